package back

import (
	"kicker/internal/util"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type Team int

const ( // this is stored in DB, don't change values
	Team1 Team = 1
	Team2 Team = 2
)

// A Game is an immutable record of one finished match, it always has exactly
// four Sessions, two per team.
type Game struct {
	ID          util.UUIDAsBlob
	CreatedAt   util.TimeAsTimestamp
	KickerID    util.UUIDAsBlob
	Score1      int
	Score2      int
	WinningTeam Team
}

// NewGame rejects tied scores outright, there is no way to store a game
// without a winner.
func NewGame(kickerID util.UUIDAsBlob, score1, score2 int, playedAt time.Time) (Game, error) {
	if score1 == score2 {
		return Game{}, ErrTiedScore
	}
	if score1 < 0 || score2 < 0 {
		return Game{}, util.ErrPublic("scores can't be negative")
	}

	winner := Team1
	if score2 > score1 {
		winner = Team2
	}

	return Game{
		ID:          util.NewUUIDAsBlob(),
		CreatedAt:   util.TimeAsTimestamp(playedAt),
		KickerID:    kickerID,
		Score1:      score1,
		Score2:      score2,
		WinningTeam: winner,
	}, nil
}

// ScoreMargin drives the rating-update magnitude.
func (g *Game) ScoreMargin() int {
	margin := g.Score1 - g.Score2
	if margin < 0 {
		return -margin
	}

	return margin
}

func (g *Game) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Game").SetMap(squirrel.Eq{
		"ID":          g.ID,
		"CreatedAt":   g.CreatedAt,
		"KickerID":    g.KickerID,
		"Score1":      g.Score1,
		"Score2":      g.Score2,
		"WinningTeam": g.WinningTeam,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getGameByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Game, error) {
	var ret Game
	query := `SELECT * FROM Game WHERE Game.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return Game{}, err
	}

	return ret, nil
}

// GameInfo is the game payload of the game JSON route, anonymous slots are
// omitted from the team lists.
type GameInfo struct {
	ID          util.UUIDAsBlob      `json:"id"`
	KickerID    util.UUIDAsBlob      `json:"kicker_id"`
	PlayedAt    util.TimeAsTimestamp `json:"played_at"`
	Score1      int                  `json:"score1"`
	Score2      int                  `json:"score2"`
	WinningTeam Team                 `json:"winning_team"`
	Team1       []PlayerSummary      `json:"team1"`
	Team2       []PlayerSummary      `json:"team2"`
}

func (b *Back) GetGameInfo(id util.UUIDAsBlob) (info GameInfo, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		game, err := getGameByID(tx, id)
		if err != nil {
			return err
		}

		sessions, err := getSessionsByGameID(tx, game.ID)
		if err != nil {
			return err
		}

		ids := make([]util.UUIDAsBlob, 0, len(sessions))
		for k := range sessions {
			ids = append(ids, sessions[k].PlayerID)
		}

		players, err := getPlayersByIDs(tx, ids)
		if err != nil {
			return err
		}

		info = GameInfo{
			ID:          game.ID,
			KickerID:    game.KickerID,
			PlayedAt:    game.CreatedAt,
			Score1:      game.Score1,
			Score2:      game.Score2,
			WinningTeam: game.WinningTeam,
			Team1:       []PlayerSummary{},
			Team2:       []PlayerSummary{},
		}

		for k := range sessions {
			if sessions[k].PlayerID == AnonymousPlayerID {
				continue
			}

			summary := summarize(players[sessions[k].PlayerID])
			if sessions[k].Team == Team1 {
				info.Team1 = append(info.Team1, summary)
			} else {
				info.Team2 = append(info.Team2, summary)
			}
		}

		return nil
	}); err != nil {
		return GameInfo{}, err
	}

	return info, nil
}
