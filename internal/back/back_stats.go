package back

import (
	"kicker/internal/util"
	"log"
	"math"
	"time"

	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// DefaultStatWindow is the trailing window behind the "weekly" dashboard
// figures.
const DefaultStatWindow = 7 * 24 * time.Hour

// RelationLimit caps the teammate/opponent lists on the dashboard.
const RelationLimit = 6

// PlayerStats are win/loss aggregates over all history and over one trailing
// window. Ratio is an integer percentage in [0,100], zero when no game was
// played.
type PlayerStats struct {
	Wins, Losses, Ratio                   int
	WindowWins, WindowLosses, WindowRatio int
}

// Ratio returns the percentage of won games, zero (not an error, not NaN)
// for an empty history.
func Ratio(wins, losses int) int {
	if wins+losses == 0 {
		return 0
	}

	return int(math.Round(100.0 * float64(wins) / float64(wins+losses)))
}

type statCount struct {
	PlayerID util.UUIDAsBlob
	Won      bool
	Count    int
}

// getStatCounts is the one access pattern every aggregate is built on: a
// single group-by on (player, won), optionally bounded by a game date
// cutoff. Batch-friendly so stats for N players never rescan N times.
func getStatCounts(tx *sqlx.Tx, playerIDs []util.UUIDAsBlob, cutoff time.Time) ([]statCount, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
        SELECT Session.PlayerID AS PlayerID, Session.Won AS Won, COUNT(*) AS Count
        FROM Session
        WHERE Session.PlayerID IN(?) AND Session.GameDate > ?
        GROUP BY Session.PlayerID, Session.Won`,
		playerIDs, cutoff.Unix(),
	)
	if err != nil {
		return nil, err
	}
	query = tx.Rebind(query)

	var ret []statCount
	if err := tx.Select(&ret, query, args...); err != nil {
		return nil, err
	}

	return ret, nil
}

// getPlayerStats computes all-time and windowed stats for a batch of players
// in two grouped queries. The two sub-queries are independent, minor skew
// under concurrent writes is tolerated.
func getPlayerStats(
	tx *sqlx.Tx,
	playerIDs []util.UUIDAsBlob,
	window time.Duration,
	now time.Time,
) (map[util.UUIDAsBlob]PlayerStats, error) {
	ret := make(map[util.UUIDAsBlob]PlayerStats, len(playerIDs))

	allTime, err := getStatCounts(tx, playerIDs, time.Time{})
	if err != nil {
		return nil, err
	}

	windowed, err := getStatCounts(tx, playerIDs, now.Add(-window))
	if err != nil {
		return nil, err
	}

	for _, v := range allTime {
		stats := ret[v.PlayerID]
		if v.Won {
			stats.Wins += v.Count
		} else {
			stats.Losses += v.Count
		}
		ret[v.PlayerID] = stats
	}

	for _, v := range windowed {
		stats := ret[v.PlayerID]
		if v.Won {
			stats.WindowWins += v.Count
		} else {
			stats.WindowLosses += v.Count
		}
		ret[v.PlayerID] = stats
	}

	for id, stats := range ret {
		stats.Ratio = Ratio(stats.Wins, stats.Losses)
		stats.WindowRatio = Ratio(stats.WindowWins, stats.WindowLosses)
		ret[id] = stats
	}

	return ret, nil
}

// GetPlayerStats returns the win/loss aggregates of a single player with the
// default trailing window. A player without history gets all zeroes.
func (b *Back) GetPlayerStats(playerID util.UUIDAsBlob) (stats PlayerStats, _ error) {
	return stats, b.transaction(func(tx *sqlx.Tx) error {
		if _, err := getPlayerByID(tx, playerID); err != nil {
			return err
		}

		all, err := getPlayerStats(tx, []util.UUIDAsBlob{playerID}, DefaultStatWindow, time.Now())
		if err != nil {
			return err
		}

		stats = all[playerID]
		return nil
	})
}

// PlayerSummary is the public face of a player in lists.
type PlayerSummary struct {
	ID      util.UUIDAsBlob `json:"id"`
	Name    string          `json:"name"`
	Tagline null.String     `json:"tagline"`
}

func summarize(p Player) PlayerSummary {
	return PlayerSummary{
		ID:      p.ID,
		Name:    p.Name,
		Tagline: p.Tagline,
	}
}

// Dashboard is the per-player landing screen: overall and weekly win/loss
// figures plus the most frequent teammates and opponents.
type Dashboard struct {
	ID     util.UUIDAsBlob `json:"id"`
	Name   string          `json:"name"`
	Wins   int             `json:"wins"`
	Losses int             `json:"losses"`
	Ratio  int             `json:"ratio"`

	WeeklyWins   int `json:"weekly_wins"`
	WeeklyLosses int `json:"weekly_losses"`
	WeeklyRatio  int `json:"weekly_ratio"`

	Teammates []PlayerSummary `json:"teammates"`
	Opponents []PlayerSummary `json:"opponents"`
}

func (b *Back) GetDashboard(playerID util.UUIDAsBlob) (dashboard Dashboard, _ error) {
	start := time.Now()
	defer func() { log.Printf("info: computed dashboard in %s", time.Since(start)) }()

	if err := b.transaction(func(tx *sqlx.Tx) error {
		player, err := getPlayerByID(tx, playerID)
		if err != nil {
			return err
		}

		now := time.Now()
		stats, err := getPlayerStats(tx, []util.UUIDAsBlob{playerID}, DefaultStatWindow, now)
		if err != nil {
			return err
		}

		teammates, err := getTeammates(tx, playerID, PeriodAll, RelationLimit, now)
		if err != nil {
			return err
		}

		opponents, err := getOpponents(tx, playerID, PeriodAll, RelationLimit, now)
		if err != nil {
			return err
		}

		dashboard = Dashboard{
			ID:           player.ID,
			Name:         player.Name,
			Wins:         stats[playerID].Wins,
			Losses:       stats[playerID].Losses,
			Ratio:        stats[playerID].Ratio,
			WeeklyWins:   stats[playerID].WindowWins,
			WeeklyLosses: stats[playerID].WindowLosses,
			WeeklyRatio:  stats[playerID].WindowRatio,
			Teammates:    teammates,
			Opponents:    opponents,
		}

		return nil
	}); err != nil {
		return Dashboard{}, err
	}

	return dashboard, nil
}

// PlayerInfo is the profile payload of the player JSON route.
type PlayerInfo struct {
	ID           util.UUIDAsBlob     `json:"id"`
	Name         string              `json:"name"`
	Tagline      null.String         `json:"tagline"`
	MainKickerID util.NullUUIDAsBlob `json:"main_kicker_id"`

	Wins         int `json:"wins"`
	Losses       int `json:"losses"`
	WinRatio     int `json:"win_ratio"`
	WeeklyWins   int `json:"weekly_wins"`
	WeeklyLosses int `json:"weekly_losses"`
	WeeklyRatio  int `json:"weekly_win_ratio"`
}

func (b *Back) GetPlayerInfo(playerID util.UUIDAsBlob) (info PlayerInfo, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		player, err := getPlayerByID(tx, playerID)
		if err != nil {
			return err
		}

		stats, err := getPlayerStats(tx, []util.UUIDAsBlob{playerID}, DefaultStatWindow, time.Now())
		if err != nil {
			return err
		}

		info = PlayerInfo{
			ID:           player.ID,
			Name:         player.Name,
			Tagline:      player.Tagline,
			MainKickerID: player.MainKickerID,
			Wins:         stats[playerID].Wins,
			Losses:       stats[playerID].Losses,
			WinRatio:     stats[playerID].Ratio,
			WeeklyWins:   stats[playerID].WindowWins,
			WeeklyLosses: stats[playerID].WindowLosses,
			WeeklyRatio:  stats[playerID].WindowRatio,
		}

		return nil
	}); err != nil {
		return PlayerInfo{}, err
	}

	return info, nil
}
