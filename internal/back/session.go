package back

import (
	"kicker/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Session is one player's participation in one Game. The game date is
// denormalized so time-window filtering never has to join on Game.
type Session struct {
	ID       util.UUIDAsBlob
	GameID   util.UUIDAsBlob
	PlayerID util.UUIDAsBlob
	Team     Team
	Won      bool
	GameDate util.TimeAsTimestamp
}

func NewSession(game Game, playerID util.UUIDAsBlob, team Team) Session {
	return Session{
		ID:       util.NewUUIDAsBlob(),
		GameID:   game.ID,
		PlayerID: playerID,
		Team:     team,
		Won:      team == game.WinningTeam,
		GameDate: game.CreatedAt,
	}
}

func (s *Session) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Session").SetMap(squirrel.Eq{
		"ID":       s.ID,
		"GameID":   s.GameID,
		"PlayerID": s.PlayerID,
		"Team":     s.Team,
		"Won":      s.Won,
		"GameDate": s.GameDate,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getSessionsByGameID(tx *sqlx.Tx, gameID util.UUIDAsBlob) ([]Session, error) {
	var ret []Session
	query := `SELECT * FROM Session WHERE Session.GameID = ?`
	if err := tx.Select(&ret, query, gameID); err != nil {
		return nil, err
	}

	return ret, nil
}
