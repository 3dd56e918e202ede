package back

import (
	"kicker/internal/util"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// A Kicker is a physical foosball table games are played on.
type Kicker struct {
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Name      string
	Location  null.String
}

func NewKicker(name string, location string) Kicker {
	return Kicker{
		ID:        util.NewUUIDAsBlob(),
		CreatedAt: util.TimeAsTimestamp(time.Now()),
		Name:      name,
		Location:  null.NewString(location, location != ""),
	}
}

func (k *Kicker) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Kicker").SetMap(squirrel.Eq{
		"ID":        k.ID,
		"CreatedAt": k.CreatedAt,
		"Name":      k.Name,
		"Location":  k.Location,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getKickerByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Kicker, error) {
	var ret Kicker
	query := `SELECT * FROM Kicker WHERE Kicker.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return Kicker{}, err
	}

	return ret, nil
}

func (b *Back) GetKickers() (ret []Kicker, _ error) {
	return ret, b.transaction(func(tx *sqlx.Tx) error {
		return tx.Select(&ret, `SELECT * FROM Kicker ORDER BY Kicker.Name ASC`)
	})
}

func (b *Back) CreateKicker(name string, location string) (kicker Kicker, _ error) {
	kicker = NewKicker(name, location)
	return kicker, b.transaction(kicker.insert)
}
