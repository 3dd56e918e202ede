package main

import (
	"kicker/internal/config"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func migrateDB() error {
	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		return err
	}

	m, err := migrate.New("file://migrations", "sqlite3://"+conf.SQLDSN)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Print("info: database schema already up to date")
			return nil
		}

		return err
	}

	log.Print("info: database schema migrated")

	return nil
}
