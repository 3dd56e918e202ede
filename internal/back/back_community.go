package back

import (
	"kicker/internal/util"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
)

type relationCount struct {
	PlayerID util.UUIDAsBlob
	Count    int
}

// getTeammates ranks the players one shared winning sessions with, most
// frequent first. Only won games count, losing together does not make a
// teammate. Ties break on the teammate's ID so the order is stable.
func getTeammates(
	tx *sqlx.Tx,
	playerID util.UUIDAsBlob,
	period Period,
	limit int,
	now time.Time,
) ([]PlayerSummary, error) {
	query := `
        SELECT Mate.PlayerID AS PlayerID, COUNT(*) AS Count
        FROM Session
        INNER JOIN Session Mate ON (
            Mate.GameID = Session.GameID AND
            Mate.Team = Session.Team AND
            Mate.PlayerID != Session.PlayerID
        )
        WHERE Session.PlayerID = ? AND Session.Won = 1
            AND Mate.PlayerID != ? AND Session.GameDate > ?
        GROUP BY Mate.PlayerID
        ORDER BY Count DESC, Mate.PlayerID ASC
        LIMIT ?`

	var counts []relationCount
	if err := tx.Select(
		&counts, query,
		playerID, AnonymousPlayerID, period.Cutoff(now).Unix(), limit,
	); err != nil {
		return nil, err
	}

	return resolveSummaries(tx, counts)
}

// getOpponents ranks the players one lost sessions against. A game has two
// opponent slots, grouping on the opposing team's player ID sums both slots
// so nobody is counted as two different entities.
func getOpponents(
	tx *sqlx.Tx,
	playerID util.UUIDAsBlob,
	period Period,
	limit int,
	now time.Time,
) ([]PlayerSummary, error) {
	query := `
        SELECT Opponent.PlayerID AS PlayerID, COUNT(*) AS Count
        FROM Session
        INNER JOIN Session Opponent ON (
            Opponent.GameID = Session.GameID AND
            Opponent.Team != Session.Team
        )
        WHERE Session.PlayerID = ? AND Session.Won = 0
            AND Opponent.PlayerID != ? AND Session.GameDate > ?
        GROUP BY Opponent.PlayerID
        ORDER BY Count DESC, Opponent.PlayerID ASC
        LIMIT ?`

	var counts []relationCount
	if err := tx.Select(
		&counts, query,
		playerID, AnonymousPlayerID, period.Cutoff(now).Unix(), limit,
	); err != nil {
		return nil, err
	}

	return resolveSummaries(tx, counts)
}

// resolveSummaries turns ranked (id, count) rows into player summaries,
// preserving the ranking order.
func resolveSummaries(tx *sqlx.Tx, counts []relationCount) ([]PlayerSummary, error) {
	ids := make([]util.UUIDAsBlob, 0, len(counts))
	for k := range counts {
		ids = append(ids, counts[k].PlayerID)
	}

	players, err := getPlayersByIDs(tx, ids)
	if err != nil {
		return nil, err
	}

	ret := make([]PlayerSummary, 0, len(counts))
	for _, id := range ids {
		player, ok := players[id]
		if !ok {
			continue
		}

		ret = append(ret, summarize(player))
	}

	return ret, nil
}

// GetTeammates and GetOpponents answer "who do I play with/against most",
// optionally bounded to the last month or year.
func (b *Back) GetTeammates(playerID util.UUIDAsBlob, period Period) (ret []PlayerSummary, _ error) {
	return ret, b.transaction(func(tx *sqlx.Tx) (err error) {
		ret, err = getTeammates(tx, playerID, period, RelationLimit, time.Now())
		return err
	})
}

func (b *Back) GetOpponents(playerID util.UUIDAsBlob, period Period) (ret []PlayerSummary, _ error) {
	return ret, b.transaction(func(tx *sqlx.Tx) (err error) {
		ret, err = getOpponents(tx, playerID, period, RelationLimit, time.Now())
		return err
	})
}

// Community splits the player base as seen from one player: the people they
// shared a table with over the last month, and everyone else.
type Community struct {
	Usual []PlayerSummary `json:"usual"`
	Rare  []PlayerSummary `json:"rare"`
}

func (b *Back) GetCommunity(playerID util.UUIDAsBlob) (community Community, _ error) {
	start := time.Now()
	defer func() { log.Printf("info: computed community stats in %s", time.Since(start)) }()

	if err := b.transaction(func(tx *sqlx.Tx) error {
		if _, err := getPlayerByID(tx, playerID); err != nil {
			return err
		}

		now := time.Now()
		usual, err := getUsualPlayers(tx, playerID, now)
		if err != nil {
			return err
		}

		rare, err := getRarePlayers(tx, playerID, usual)
		if err != nil {
			return err
		}

		community = Community{Usual: usual, Rare: rare}
		return nil
	}); err != nil {
		return Community{}, err
	}

	return community, nil
}

// getUsualPlayers ranks everyone who shared a game with the player over the
// last month, teammate or opponent alike, won or lost.
func getUsualPlayers(tx *sqlx.Tx, playerID util.UUIDAsBlob, now time.Time) ([]PlayerSummary, error) {
	query := `
        SELECT Other.PlayerID AS PlayerID, COUNT(*) AS Count
        FROM Session
        INNER JOIN Session Other ON (
            Other.GameID = Session.GameID AND
            Other.PlayerID != Session.PlayerID
        )
        WHERE Session.PlayerID = ? AND Other.PlayerID != ? AND Session.GameDate > ?
        GROUP BY Other.PlayerID
        ORDER BY Count DESC, Other.PlayerID ASC`

	var counts []relationCount
	if err := tx.Select(
		&counts, query,
		playerID, AnonymousPlayerID, PeriodMonth.Cutoff(now).Unix(),
	); err != nil {
		return nil, err
	}

	return resolveSummaries(tx, counts)
}

// getRarePlayers returns every eligible player not in the usual list and not
// the player themselves, for the "you should play with them" half of the
// community screen.
func getRarePlayers(tx *sqlx.Tx, playerID util.UUIDAsBlob, usual []PlayerSummary) ([]PlayerSummary, error) {
	exclude := make([]util.UUIDAsBlob, 0, len(usual)+1)
	exclude = append(exclude, playerID)
	for k := range usual {
		exclude = append(exclude, usual[k].ID)
	}

	query, args, err := sqlx.In(
		`SELECT * FROM Player
        WHERE Player.IsPlayer = 1 AND Player.ID NOT IN(?)
        ORDER BY Player.Name ASC`,
		exclude,
	)
	if err != nil {
		return nil, err
	}
	query = tx.Rebind(query)

	var players []Player
	if err := tx.Select(&players, query, args...); err != nil {
		return nil, err
	}

	ret := make([]PlayerSummary, 0, len(players))
	for k := range players {
		ret = append(ret, summarize(players[k]))
	}

	return ret, nil
}
