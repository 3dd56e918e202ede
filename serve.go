package main

import (
	"kicker/internal/back"
	"kicker/internal/bot"
	"kicker/internal/config"
	"kicker/internal/web"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

func serve() error {
	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		return err
	}

	b, err := back.New("sqlite3", conf.SQLDSN)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	signaled := make(chan os.Signal, 1)
	signal.Notify(signaled, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	go web.NewServer(b, conf.HTTPListenAddr).Serve(&wg, done)

	if conf.DiscordToken != "" {
		discord, err := bot.New(b, conf.DiscordToken, conf.DiscordAdminUserID)
		if err != nil {
			return err
		}

		go discord.Serve(&wg, done)
	} else {
		log.Print("info: no Discord token configured, not starting the bot")
	}

	sig := <-signaled
	log.Printf("received signal %d", sig)
	close(done)
	wg.Wait()

	log.Print("shutdown complete")

	return nil
}
