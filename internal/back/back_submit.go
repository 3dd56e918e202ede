package back

import (
	"kicker/internal/util"
	"time"

	"github.com/jmoiron/sqlx"
)

// SubmitGame records a finished game and updates the four participants'
// ratings in a single transaction.
// Each team holds zero to two player IDs, empty slots are filled with the
// anonymous placeholder, but at least one real player must take part.
func (b *Back) SubmitGame(
	kickerID util.UUIDAsBlob,
	team1, team2 []util.UUIDAsBlob,
	score1, score2 int,
) (util.UUIDAsBlob, error) {
	return b.SubmitGameAt(kickerID, team1, team2, score1, score2, time.Now())
}

// SubmitGameAt is SubmitGame with an explicit game date, it exists for demo
// fixtures and backfills. Rating updates are applied in submission order, not
// in game date order.
func (b *Back) SubmitGameAt(
	kickerID util.UUIDAsBlob,
	team1, team2 []util.UUIDAsBlob,
	score1, score2 int,
	playedAt time.Time,
) (util.UUIDAsBlob, error) {
	if len(team1) > 2 || len(team2) > 2 {
		return util.UUIDAsBlob{}, ErrInvalidComposition
	}

	team1 = fillTeam(team1)
	team2 = fillTeam(team2)
	if !hasRegisteredPlayer(team1) && !hasRegisteredPlayer(team2) {
		return util.UUIDAsBlob{}, ErrInvalidComposition
	}

	game, err := NewGame(kickerID, score1, score2, playedAt)
	if err != nil {
		return util.UUIDAsBlob{}, err
	}

	sessions := []Session{
		NewSession(game, team1[0], Team1),
		NewSession(game, team1[1], Team1),
		NewSession(game, team2[0], Team2),
		NewSession(game, team2[1], Team2),
	}

	if err := b.transaction(func(tx *sqlx.Tx) error {
		if _, err := getKickerByID(tx, game.KickerID); err != nil {
			return ErrUnknownKicker
		}

		if err := ensurePlayersExist(tx, append(team1, team2...)); err != nil {
			return err
		}

		if err := game.insert(tx); err != nil {
			return err
		}

		for k := range sessions {
			if err := sessions[k].insert(tx); err != nil {
				return err
			}
		}

		return updateGameRatings(tx, game, sessions)
	}); err != nil {
		return util.UUIDAsBlob{}, err
	}

	return game.ID, nil
}

// fillTeam pads a team up to two slots with the anonymous placeholder.
func fillTeam(team []util.UUIDAsBlob) []util.UUIDAsBlob {
	filled := make([]util.UUIDAsBlob, 2)
	copy(filled, team)
	return filled
}

func hasRegisteredPlayer(team []util.UUIDAsBlob) bool {
	for _, id := range team {
		if id != AnonymousPlayerID {
			return true
		}
	}

	return false
}

func ensurePlayersExist(tx *sqlx.Tx, ids []util.UUIDAsBlob) error {
	unique := make(map[util.UUIDAsBlob]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	players, err := getPlayersByIDs(tx, ids)
	if err != nil {
		return err
	}

	if len(players) != len(unique) {
		return ErrUnknownPlayer
	}

	return nil
}
