package back

import (
	"kicker/internal/util"
	"log"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
)

// RankingEntry is one row of a leaderboard.
type RankingEntry struct {
	ID      util.UUIDAsBlob `json:"id"`
	Name    string          `json:"name"`
	Won     int             `json:"won"`
	Lost    int             `json:"lost"`
	Matches int             `json:"matches"`
}

type Rankings struct {
	Players []RankingEntry `json:"players"`
	Label   string         `json:"label"`
}

// GetRankings computes the leaderboard of every eligible player with at
// least one session in the period. Identity resolution is a single batch
// lookup, never a per-row rescan.
func (b *Back) GetRankings(period Period) (Rankings, error) {
	start := time.Now()
	defer func() { log.Printf("info: computed %s rankings in %s", period, time.Since(start)) }()

	if _, err := NewRankingPeriod(string(period)); err != nil {
		return Rankings{}, err
	}

	ret := Rankings{
		Players: []RankingEntry{},
		Label:   period.Label(),
	}

	if err := b.transaction(func(tx *sqlx.Tx) error {
		counts, err := getEligibleStatCounts(tx, period.Cutoff(time.Now()))
		if err != nil {
			return err
		}

		entries := make(map[util.UUIDAsBlob]RankingEntry, len(counts))
		ids := make([]util.UUIDAsBlob, 0, len(counts))
		for _, v := range counts {
			entry, ok := entries[v.PlayerID]
			if !ok {
				ids = append(ids, v.PlayerID)
				entry.ID = v.PlayerID
			}

			if v.Won {
				entry.Won += v.Count
			} else {
				entry.Lost += v.Count
			}
			entry.Matches = entry.Won + entry.Lost
			entries[v.PlayerID] = entry
		}

		players, err := getPlayersByIDs(tx, ids)
		if err != nil {
			return err
		}

		for _, id := range ids {
			entry := entries[id]
			entry.Name = players[id].Name
			ret.Players = append(ret.Players, entry)
		}

		return nil
	}); err != nil {
		return Rankings{}, err
	}

	// The presentation layer is free to reorder, this is only to make the
	// output deterministic.
	sort.Slice(ret.Players, func(i, j int) bool {
		if ret.Players[i].Won != ret.Players[j].Won {
			return ret.Players[i].Won > ret.Players[j].Won
		}

		return ret.Players[i].Name < ret.Players[j].Name
	})

	return ret, nil
}

// getEligibleStatCounts is the ranking variant of getStatCounts: same
// (player, won) group-by but over every eligible player after a cutoff.
func getEligibleStatCounts(tx *sqlx.Tx, cutoff time.Time) ([]statCount, error) {
	var ret []statCount
	query := `
        SELECT Session.PlayerID AS PlayerID, Session.Won AS Won, COUNT(*) AS Count
        FROM Session
        INNER JOIN Player ON (Player.ID = Session.PlayerID)
        WHERE Player.IsPlayer = 1 AND Session.GameDate > ?
        GROUP BY Session.PlayerID, Session.Won`

	if err := tx.Select(&ret, query, cutoff.Unix()); err != nil {
		return nil, err
	}

	return ret, nil
}
