package back // nolint:testpackage

import (
	"io/ioutil"
	"kicker/internal/util"
	"math"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func newTestBack(t *testing.T) *Back {
	t.Helper()

	b, err := New("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}

	// Every connection gets its own empty :memory: database, keep a single
	// one so the schema does not vanish mid-test.
	b.db.SetMaxOpenConns(1)

	schema, err := ioutil.ReadFile(filepath.Join("..", "..", "migrations", "0001_initial.up.sql"))
	if err != nil {
		t.Fatal(err)
	}
	b.db.MustExec(string(schema))

	return b
}

func createTestKicker(t *testing.T, b *Back) Kicker {
	t.Helper()

	kicker, err := b.CreateKicker("break room", "")
	if err != nil {
		t.Fatal(err)
	}

	return kicker
}

func registerTestPlayers(t *testing.T, b *Back, names ...string) []Player {
	t.Helper()

	ret := make([]Player, 0, len(names))
	for _, name := range names {
		player, err := b.RegisterPlayer(name)
		if err != nil {
			t.Fatal(err)
		}
		ret = append(ret, player)
	}

	return ret
}

func TestSubmitGameUpdatesRatings(t *testing.T) {
	b := newTestBack(t)
	kicker := createTestKicker(t, b)
	players := registerTestPlayers(t, b, "Alice", "Bob", "Carol", "Dave")

	gameID, err := b.SubmitGame(
		kicker.ID,
		[]util.UUIDAsBlob{players[0].ID, players[1].ID},
		[]util.UUIDAsBlob{players[2].ID, players[3].ID},
		11, 5,
	)
	if err != nil {
		t.Fatal(err)
	}

	info, err := b.GetGameInfo(gameID)
	if err != nil {
		t.Fatal(err)
	}
	if info.Score1 != 11 || info.Score2 != 5 || info.WinningTeam != Team1 {
		t.Errorf("unexpected game info: %+v", info)
	}
	if len(info.Team1) != 2 || len(info.Team2) != 2 {
		t.Errorf("expected two players per team, got %d and %d", len(info.Team1), len(info.Team2))
	}

	// k = 32+6, even expectancies: winners +19, losers -19.
	expected := []float64{1519, 1519, 1481, 1481}
	for k, v := range players {
		player, err := b.GetPlayerByID(v.ID)
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(player.Rating-expected[k]) > 1e-9 {
			t.Errorf("%s: expected rating %f got %f", player.Name, expected[k], player.Rating)
		}
	}
}

func TestSubmitGameRejectsTie(t *testing.T) {
	b := newTestBack(t)
	kicker := createTestKicker(t, b)
	players := registerTestPlayers(t, b, "Alice", "Bob")

	_, err := b.SubmitGame(
		kicker.ID,
		[]util.UUIDAsBlob{players[0].ID},
		[]util.UUIDAsBlob{players[1].ID},
		10, 10,
	)
	if err != ErrTiedScore {
		t.Fatalf("expected ErrTiedScore, got %v", err)
	}

	stats, err := b.GetPlayerStats(players[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Wins != 0 || stats.Losses != 0 {
		t.Errorf("a rejected game left sessions behind: %+v", stats)
	}
}

func TestSubmitGameValidatesParticipants(t *testing.T) {
	b := newTestBack(t)
	kicker := createTestKicker(t, b)
	players := registerTestPlayers(t, b, "Alice", "Bob")

	_, err := b.SubmitGame(
		kicker.ID,
		[]util.UUIDAsBlob{players[0].ID},
		[]util.UUIDAsBlob{util.NewUUIDAsBlob()},
		11, 9,
	)
	if err != ErrUnknownPlayer {
		t.Errorf("expected ErrUnknownPlayer, got %v", err)
	}

	_, err = b.SubmitGame(kicker.ID, nil, nil, 11, 9)
	if err != ErrInvalidComposition {
		t.Errorf("expected ErrInvalidComposition for two empty teams, got %v", err)
	}

	_, err = b.SubmitGame(
		kicker.ID,
		[]util.UUIDAsBlob{players[0].ID, players[1].ID, players[0].ID},
		nil,
		11, 9,
	)
	if err != ErrInvalidComposition {
		t.Errorf("expected ErrInvalidComposition for a team of three, got %v", err)
	}

	_, err = b.SubmitGame(
		util.NewUUIDAsBlob(),
		[]util.UUIDAsBlob{players[0].ID},
		[]util.UUIDAsBlob{players[1].ID},
		11, 9,
	)
	if err != ErrUnknownKicker {
		t.Errorf("expected ErrUnknownKicker, got %v", err)
	}
}

func TestDashboardEmptyHistory(t *testing.T) {
	b := newTestBack(t)
	players := registerTestPlayers(t, b, "Alice")

	dashboard, err := b.GetDashboard(players[0].ID)
	if err != nil {
		t.Fatal(err)
	}

	if dashboard.Name != "Alice" {
		t.Errorf("expected name Alice got %s", dashboard.Name)
	}
	if dashboard.Wins != 0 || dashboard.Losses != 0 || dashboard.Ratio != 0 {
		t.Errorf("expected all-zero stats, got %+v", dashboard)
	}
	if dashboard.Teammates == nil || len(dashboard.Teammates) != 0 {
		t.Errorf("expected an empty teammate list, got %v", dashboard.Teammates)
	}
	if dashboard.Opponents == nil || len(dashboard.Opponents) != 0 {
		t.Errorf("expected an empty opponent list, got %v", dashboard.Opponents)
	}
}

func TestRankingsWindow(t *testing.T) {
	b := newTestBack(t)
	kicker := createTestKicker(t, b)
	p := registerTestPlayers(t, b, "Alice", "Bob", "Carol", "Dave")

	submitAt := func(team1, team2 []util.UUIDAsBlob, age time.Duration) {
		t.Helper()
		if _, err := b.SubmitGameAt(kicker.ID, team1, team2, 11, 5, time.Now().Add(-age)); err != nil {
			t.Fatal(err)
		}
	}

	// Alice and Bob won 8 days ago, out of the weekly window.
	submitAt(
		[]util.UUIDAsBlob{p[0].ID, p[1].ID},
		[]util.UUIDAsBlob{p[2].ID, p[3].ID},
		8*24*time.Hour,
	)
	// Alice and Carol won 2 days ago.
	submitAt(
		[]util.UUIDAsBlob{p[0].ID, p[2].ID},
		[]util.UUIDAsBlob{p[1].ID, p[3].ID},
		2*24*time.Hour,
	)

	week, err := b.GetRankings(PeriodWeek)
	if err != nil {
		t.Fatal(err)
	}

	expectedWeek := []RankingEntry{
		{ID: p[0].ID, Name: "Alice", Won: 1, Lost: 0, Matches: 1},
		{ID: p[2].ID, Name: "Carol", Won: 1, Lost: 0, Matches: 1},
		{ID: p[1].ID, Name: "Bob", Won: 0, Lost: 1, Matches: 1},
		{ID: p[3].ID, Name: "Dave", Won: 0, Lost: 1, Matches: 1},
	}
	if !reflect.DeepEqual(week.Players, expectedWeek) {
		t.Errorf("weekly rankings\nexpected %+v\ngot      %+v", expectedWeek, week.Players)
	}
	if week.Label != "Weekly rankings" {
		t.Errorf("expected weekly label, got %q", week.Label)
	}

	month, err := b.GetRankings(PeriodMonth)
	if err != nil {
		t.Fatal(err)
	}

	expectedMonth := []RankingEntry{
		{ID: p[0].ID, Name: "Alice", Won: 2, Lost: 0, Matches: 2},
		{ID: p[1].ID, Name: "Bob", Won: 1, Lost: 1, Matches: 2},
		{ID: p[2].ID, Name: "Carol", Won: 1, Lost: 1, Matches: 2},
		{ID: p[3].ID, Name: "Dave", Won: 0, Lost: 2, Matches: 2},
	}
	if !reflect.DeepEqual(month.Players, expectedMonth) {
		t.Errorf("monthly rankings\nexpected %+v\ngot      %+v", expectedMonth, month.Players)
	}

	again, err := b.GetRankings(PeriodMonth)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(month, again) {
		t.Error("two identical ranking reads disagree")
	}

	if _, err := b.GetRankings(PeriodAll); err == nil {
		t.Error("expected the all-time period to be rejected for rankings")
	}
}

func TestTeammatesAndOpponents(t *testing.T) {
	b := newTestBack(t)
	kicker := createTestKicker(t, b)
	p := registerTestPlayers(t, b, "Alice", "Bob", "Carol", "Dave")
	alice, bob, carol, dave := p[0].ID, p[1].ID, p[2].ID, p[3].ID

	submit := func(team1, team2 []util.UUIDAsBlob) {
		t.Helper()
		if _, err := b.SubmitGame(kicker.ID, team1, team2, 11, 5); err != nil {
			t.Fatal(err)
		}
	}

	submit([]util.UUIDAsBlob{alice, bob}, []util.UUIDAsBlob{carol, dave})
	submit([]util.UUIDAsBlob{alice, bob}, []util.UUIDAsBlob{carol, dave})
	submit([]util.UUIDAsBlob{alice, carol}, []util.UUIDAsBlob{bob, dave})
	// Alice loses with Bob, losing together must not count as teaming up.
	submit([]util.UUIDAsBlob{carol, dave}, []util.UUIDAsBlob{alice, bob})
	// Solo game, the anonymous placeholder must stay invisible.
	submit([]util.UUIDAsBlob{carol}, []util.UUIDAsBlob{alice})

	teammates, err := b.GetTeammates(alice, PeriodAll)
	if err != nil {
		t.Fatal(err)
	}
	assertSummaryNames(t, "teammates", teammates, []string{"Bob", "Carol"})

	opponents, err := b.GetOpponents(alice, PeriodAll)
	if err != nil {
		t.Fatal(err)
	}
	assertSummaryNames(t, "opponents", opponents, []string{"Carol", "Dave"})

	// Carol won her solo game, her anonymous "teammate" must not show up.
	teammates, err = b.GetTeammates(carol, PeriodAll)
	if err != nil {
		t.Fatal(err)
	}
	assertSummaryNames(t, "teammates", teammates, []string{"Dave"})
}

func TestCommunity(t *testing.T) {
	b := newTestBack(t)
	kicker := createTestKicker(t, b)
	p := registerTestPlayers(t, b, "Alice", "Bob", "Carol", "Dave", "Erin")
	alice, bob, carol := p[0].ID, p[1].ID, p[2].ID

	// A recent loss still makes Bob and Carol "usual", outcome is irrelevant.
	if _, err := b.SubmitGame(
		kicker.ID,
		[]util.UUIDAsBlob{alice, bob},
		[]util.UUIDAsBlob{carol},
		5, 11,
	); err != nil {
		t.Fatal(err)
	}

	// A second game with Bob puts him ahead of Carol.
	if _, err := b.SubmitGame(
		kicker.ID,
		[]util.UUIDAsBlob{alice},
		[]util.UUIDAsBlob{bob},
		11, 7,
	); err != nil {
		t.Fatal(err)
	}

	// Dave last played with Alice two months ago, he fell out of the usual
	// circle.
	if _, err := b.SubmitGameAt(
		kicker.ID,
		[]util.UUIDAsBlob{alice},
		[]util.UUIDAsBlob{p[3].ID},
		11, 9,
		time.Now().AddDate(0, -2, 0),
	); err != nil {
		t.Fatal(err)
	}

	community, err := b.GetCommunity(alice)
	if err != nil {
		t.Fatal(err)
	}

	assertSummaryNames(t, "usual", community.Usual, []string{"Bob", "Carol"})
	assertSummaryNames(t, "rare", community.Rare, []string{"Dave", "Erin"})
}

func assertSummaryNames(t *testing.T, what string, actual []PlayerSummary, expected []string) {
	t.Helper()

	names := make([]string, 0, len(actual))
	for k := range actual {
		names = append(names, actual[k].Name)
	}

	if !reflect.DeepEqual(names, expected) {
		t.Errorf("expected %s %v got %v", what, expected, names)
	}
}
