package back

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Back holds the storage and every operation of the kicker service, frontends
// (web, bot) only ever talk to a Back.
type Back struct {
	db *sqlx.DB
}

func New(sqlDriver string, sqlDSN string) (*Back, error) {
	// Keep column names identical to Go field names, a single greppable
	// string across the source beats any conversion scheme.
	// HACK: This is global but putting this in init() makes tests ugly.
	sqlx.NameMapper = func(v string) string { return v }

	db, err := sqlx.Connect(sqlDriver, sqlDSN)
	if err != nil {
		return nil, err
	}

	return &Back{
		db: db,
	}, nil
}

type transactionCallback func(*sqlx.Tx) error

func (b *Back) transaction(cb transactionCallback) error {
	tx, err := b.db.Beginx()
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		if err2 := tx.Rollback(); err2 != nil {
			return fmt.Errorf("rollback error: %s\noriginal error: %s", err2, err)
		}

		return err
	}

	return tx.Commit()
}
