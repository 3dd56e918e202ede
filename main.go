package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

func main() {
	flag.Parse()

	switch flag.Arg(0) {
	case "version":
		fmt.Fprintf(os.Stdout, "Kicker %s\n", Version)
	case "serve":
		if err := serve(); err != nil {
			log.Fatalf("error: %s", err)
		}
	case "migrate":
		if err := migrateDB(); err != nil {
			log.Fatalf("error: %s", err)
		}
	case "dev:fixtures":
		if err := loadFixtures(); err != nil {
			log.Fatalf("error: %s", err)
		}
	case "help":
		fmt.Fprint(os.Stdout, help())
		return
	default:
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
	}
}

func help() string {
	return fmt.Sprintf(`
Kicker keeps track of office foosball games: scores, rankings, ratings,
and who you should be playing with.

Usage: %[1]s COMMAND [ARGS…]

COMMANDS
    dev:fixtures create demo players, kickers, and a year of random games
    help         display this help
    migrate      create or upgrade the database schema
    serve        run the HTTP API and the Discord bot
    version      display the current version
`,
		os.Args[0],
	)
}
