package main

import (
	"kicker/internal/back"
	"kicker/internal/config"
	"kicker/internal/util"
	"log"
	"math/rand"
	"time"
)

const demoGameCount = 100

// loadFixtures creates a handful of players, two kickers, and a year of
// random games for quick testing during development.
func loadFixtures() error {
	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		return err
	}

	b, err := back.New("sqlite3", conf.SQLDSN)
	if err != nil {
		return err
	}

	kickers := make([]back.Kicker, 0, 2)
	for _, v := range []struct{ name, location string }{
		{"Old Faithful", "ground floor"},
		{"The Wobbly One", "cafeteria"},
	} {
		kicker, err := b.CreateKicker(v.name, v.location)
		if err != nil {
			return err
		}
		kickers = append(kickers, kicker)
	}

	names := []string{
		"Ada", "Barbara", "Dennis", "Donald", "Grace",
		"Ken", "Linus", "Margaret", "Niklaus", "Rob",
	}
	players := make([]back.Player, 0, len(names))
	for _, name := range names {
		player, err := b.RegisterPlayer(name)
		if err != nil {
			return err
		}
		players = append(players, player)
	}

	for i := 0; i < demoGameCount; i++ {
		rand.Shuffle(len(players), func(i, j int) {
			players[i], players[j] = players[j], players[i]
		})

		playedAt := time.Now().Add(-time.Duration(rand.Int63n(int64(365 * 24 * time.Hour))))
		kicker := kickers[rand.Intn(len(kickers))]

		if _, err := b.SubmitGameAt(
			kicker.ID,
			[]util.UUIDAsBlob{players[0].ID, players[1].ID},
			[]util.UUIDAsBlob{players[2].ID, players[3].ID},
			11, 11-(2+rand.Intn(9)),
			playedAt,
		); err != nil {
			return err
		}
	}

	log.Printf("info: created %d players and %d demo games", len(players), demoGameCount)

	return nil
}
