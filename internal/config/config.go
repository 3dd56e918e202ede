package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type Config struct {
	// HTTPListenAddr is the host:port the JSON API binds to.
	HTTPListenAddr string

	// SQLDSN is the path of the sqlite database.
	SQLDSN string

	// DiscordToken enables the Discord frontend when non-empty.
	DiscordToken string

	// DiscordAdminUserID is pinged when something goes wrong.
	DiscordAdminUserID string
}

func NewFromUserConfigDir() (*Config, error) {
	c := &Config{}
	if err := c.ReloadFromUserConfigDir(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) expandFromEnv() {
	vars := []struct {
		src string
		dst *string
	}{
		{"KICKER_LISTEN", &c.HTTPListenAddr},
		{"KICKER_SQL_DSN", &c.SQLDSN},
		{"KICKER_DISCORD_TOKEN", &c.DiscordToken},
		{"KICKER_DISCORD_ADMIN", &c.DiscordAdminUserID},
	}

	for _, v := range vars {
		if str := os.Getenv(v.src); str != "" {
			*v.dst = str
		}
	}
}

func (c *Config) applyDefaults() {
	if c.HTTPListenAddr == "" {
		c.HTTPListenAddr = "127.0.0.1:3001"
	}

	if c.SQLDSN == "" {
		c.SQLDSN = "./kicker.db"
	}
}

func (c *Config) ReloadFromUserConfigDir() error {
	defer c.applyDefaults()
	defer c.expandFromEnv()

	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}
	log.Printf("debug: reading conf from %s", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// First run, write a file the operator can then edit.
		*c = Config{}
		c.applyDefaults()
		return c.Write()
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(c)
}

func getOrCreateUserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, "kicker")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

func (c *Config) Write() error {
	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}
	log.Printf("debug: writing conf to %s", path)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o700)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(c); err != nil {
		if err2 := f.Close(); err2 != nil {
			return fmt.Errorf("unable to close file (%s) after error: %w", err2, err)
		}

		return err
	}

	return f.Close()
}
