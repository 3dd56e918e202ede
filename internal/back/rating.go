package back

import (
	"fmt"
	"kicker/internal/util"
	"math"

	"github.com/jmoiron/sqlx"
)

// Team Elo: the classic Elo update applied to the mean rating of each
// two-player team, both teammates end up with the identical new rating.
// Individual contribution is deliberately not separated from team
// performance.
const (
	// BaseK is the fixed part of the K factor, the score margin is added on
	// top so one-sided games move ratings further.
	BaseK = 32

	// DefaultRating is the neutral rating of a player with no game history.
	DefaultRating = 1500.0

	// eloSpread is the rating gap that makes the better team an expected
	// 10-to-1 favorite.
	eloSpread = 400.0
)

// expectedScore is the standard Elo win expectancy of a team rated `rating`
// against a team rated `opponent`, in ]0,1[.
func expectedScore(rating, opponent float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (opponent-rating)/eloSpread))
}

// newTeamRatings returns the post-game rating of the winning and losing team
// given their pre-game mean ratings and the score margin.
func newTeamRatings(winnersRating, losersRating float64, margin int) (winners, losers float64) {
	k := float64(BaseK + margin)
	expectedWinner := expectedScore(winnersRating, losersRating)
	expectedLoser := expectedScore(losersRating, winnersRating)

	winners = winnersRating + k*(1.0-expectedWinner)
	losers = losersRating + k*(0.0-expectedLoser)

	return winners, losers
}

// updateGameRatings applies a single game to the ratings of its four
// participants. It must run in the same transaction that created the Game
// and its Sessions, a stored game without its rating update is an
// inconsistent state.
func updateGameRatings(tx *sqlx.Tx, game Game, sessions []Session) error {
	winnerIDs, loserIDs := partitionSessions(sessions)
	if len(winnerIDs) != 2 || len(loserIDs) != 2 {
		return fmt.Errorf("expected 2 winners and 2 losers, got %d and %d", len(winnerIDs), len(loserIDs))
	}

	players, err := getPlayersByIDs(tx, append(winnerIDs, loserIDs...))
	if err != nil {
		return fmt.Errorf("unable to fetch participants: %w", err)
	}

	winnersRating := (players[winnerIDs[0]].Rating + players[winnerIDs[1]].Rating) / 2.0
	losersRating := (players[loserIDs[0]].Rating + players[loserIDs[1]].Rating) / 2.0
	newWinners, newLosers := newTeamRatings(winnersRating, losersRating, game.ScoreMargin())

	for _, id := range winnerIDs {
		if err := setPlayerRating(tx, id, newWinners); err != nil {
			return fmt.Errorf("unable to update winner rating: %w", err)
		}
	}

	for _, id := range loserIDs {
		if err := setPlayerRating(tx, id, newLosers); err != nil {
			return fmt.Errorf("unable to update loser rating: %w", err)
		}
	}

	return nil
}

func partitionSessions(sessions []Session) (winners, losers []util.UUIDAsBlob) {
	for k := range sessions {
		if sessions[k].Won {
			winners = append(winners, sessions[k].PlayerID)
		} else {
			losers = append(losers, sessions[k].PlayerID)
		}
	}

	return winners, losers
}
