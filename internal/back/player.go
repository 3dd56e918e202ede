package back

import (
	"fmt"
	"kicker/internal/util"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// AnonymousPlayerID is the well-known ID of the placeholder participant used
// to fill empty team slots. The row is created by the initial migration and
// is not an eligible player, it never shows up in rankings or relationship
// stats.
var AnonymousPlayerID = util.UUIDAsBlob{} // nolint:gochecknoglobals

// A Player is a participant in kicker Games, one Session per Game.
// Rating is owned by the rating engine and is only ever written inside the
// game submission transaction.
type Player struct {
	ID           util.UUIDAsBlob
	CreatedAt    util.TimeAsTimestamp
	Name         string
	Tagline      null.String
	DiscordID    null.String
	MainKickerID util.NullUUIDAsBlob
	Rating       float64
	IsPlayer     bool
}

func NewPlayer(name string) Player {
	return Player{
		ID:        util.NewUUIDAsBlob(),
		CreatedAt: util.TimeAsTimestamp(time.Now()),
		Name:      name,
		Rating:    DefaultRating,
		IsPlayer:  true,
	}
}

func (p *Player) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Player").SetMap(squirrel.Eq{
		"ID":           p.ID,
		"CreatedAt":    p.CreatedAt,
		"Name":         p.Name,
		"Tagline":      p.Tagline,
		"DiscordID":    p.DiscordID,
		"MainKickerID": p.MainKickerID,
		"Rating":       p.Rating,
		"IsPlayer":     p.IsPlayer,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (p *Player) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Player").SetMap(squirrel.Eq{
		"Name":         p.Name,
		"Tagline":      p.Tagline,
		"DiscordID":    p.DiscordID,
		"MainKickerID": p.MainKickerID,
	}).Where("Player.ID = ?", p.ID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

// setPlayerRating writes a new skill rating, only updateGameRatings may call
// this.
func setPlayerRating(tx *sqlx.Tx, id util.UUIDAsBlob, rating float64) error {
	query, args, err := squirrel.Update("Player").
		Set("Rating", rating).
		Where("Player.ID = ?", id).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getPlayerByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return Player{}, err
	}

	return ret, nil
}

func getPlayerByName(tx *sqlx.Tx, name string) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.Name = ? LIMIT 1`
	if err := tx.Get(&ret, query, name); err != nil {
		return Player{}, err
	}

	return ret, nil
}

func getPlayerByDiscordID(tx *sqlx.Tx, discordID string) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.DiscordID = ? LIMIT 1`
	if err := tx.Get(&ret, query, discordID); err != nil {
		return Player{}, err
	}

	return ret, nil
}

// getPlayersByIDs returns the players for a set of IDs indexed by their ID,
// absent IDs are silently missing from the map.
func getPlayersByIDs(tx *sqlx.Tx, ids []util.UUIDAsBlob) (map[util.UUIDAsBlob]Player, error) {
	if len(ids) == 0 {
		return map[util.UUIDAsBlob]Player{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM Player WHERE ID IN(?)`, ids)
	if err != nil {
		return nil, err
	}
	query = tx.Rebind(query)

	players := make([]Player, 0, len(ids))
	if err := tx.Select(&players, query, args...); err != nil {
		return nil, err
	}

	ret := make(map[util.UUIDAsBlob]Player, len(players))
	for k := range players {
		ret[players[k].ID] = players[k]
	}

	return ret, nil
}

// getEligiblePlayers returns every registered (non-anonymous) player.
func getEligiblePlayers(tx *sqlx.Tx) ([]Player, error) {
	var ret []Player
	query := `SELECT * FROM Player WHERE Player.IsPlayer = 1 ORDER BY Player.Name ASC`
	if err := tx.Select(&ret, query); err != nil {
		return nil, err
	}

	return ret, nil
}

func (b *Back) GetPlayers() (ret []Player, _ error) {
	return ret, b.transaction(func(tx *sqlx.Tx) (err error) {
		ret, err = getEligiblePlayers(tx)
		return err
	})
}

func (b *Back) GetPlayerByID(id util.UUIDAsBlob) (player Player, _ error) {
	return player, b.transaction(func(tx *sqlx.Tx) (err error) {
		player, err = getPlayerByID(tx, id)
		return err
	})
}

func (b *Back) GetPlayerByDiscordID(discordID string) (player Player, _ error) {
	return player, b.transaction(func(tx *sqlx.Tx) (err error) {
		player, err = getPlayerByDiscordID(tx, discordID)
		return err
	})
}

func (b *Back) GetPlayerByName(name string) (player Player, _ error) {
	return player, b.transaction(func(tx *sqlx.Tx) (err error) {
		player, err = getPlayerByName(tx, name)
		return err
	})
}

func validatePlayerName(tx *sqlx.Tx, name string) error {
	if len(name) < 3 || len(name) > 32 {
		return util.ErrPublic("your name must be between 3 and 32 characters")
	}

	if _, err := getPlayerByName(tx, name); err == nil {
		return util.ErrPublic(fmt.Sprintf("the name `%s` is taken already, please pick another one", name))
	}

	return nil
}

func (b *Back) RegisterPlayer(name string) (player Player, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		if err := validatePlayerName(tx, name); err != nil {
			return err
		}

		player = NewPlayer(name)
		return player.insert(tx)
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}

func (b *Back) RegisterDiscordPlayer(discordID, name string) (player Player, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		if _, err := getPlayerByDiscordID(tx, discordID); err == nil {
			return util.ErrPublic("you are already registered")
		}

		if err := validatePlayerName(tx, name); err != nil {
			return err
		}

		player = NewPlayer(name)
		player.DiscordID = null.StringFrom(discordID)
		return player.insert(tx)
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}

// UpdatePlayerProfile updates the mutable profile fields of a player, an
// empty name keeps the current one.
func (b *Back) UpdatePlayerProfile(
	id util.UUIDAsBlob,
	name string,
	tagline null.String,
	mainKickerID util.NullUUIDAsBlob,
) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		player, err := getPlayerByID(tx, id)
		if err != nil {
			return err
		}

		if name != "" && name != player.Name {
			if err := validatePlayerName(tx, name); err != nil {
				return err
			}
			player.Name = name
		}

		if mainKickerID.Valid {
			if _, err := getKickerByID(tx, mainKickerID.UUID); err != nil {
				return util.ErrPublic("this kicker does not exist")
			}
		}

		player.Tagline = tagline
		player.MainKickerID = mainKickerID

		return player.update(tx)
	})
}
