package back // nolint:testpackage

import (
	"math"
	"testing"
)

func TestNewTeamRatings(t *testing.T) {
	cases := []struct {
		winners, losers       float64
		margin                int
		expWinners, expLosers float64
	}{
		// Even teams, 11-5: k = 32+6 = 38, expectancy 0.5 on both sides.
		{1500, 1500, 6, 1519, 1481},
		{1500, 1500, 1, 1516.5, 1483.5},
		// The favorites win, small swing.
		{1600, 1400, 2, 1608.1686044939434, 1391.8313955060566},
		// The underdogs win, large swing.
		{1400, 1600, 2, 1425.831395506057, 1574.168604493943},
	}

	for k, v := range cases {
		winners, losers := newTeamRatings(v.winners, v.losers, v.margin)
		if math.Abs(winners-v.expWinners) > 1e-9 {
			t.Errorf("case #%d: expected winners rating %f got %f", k, v.expWinners, winners)
		}
		if math.Abs(losers-v.expLosers) > 1e-9 {
			t.Errorf("case #%d: expected losers rating %f got %f", k, v.expLosers, losers)
		}
	}
}

func TestExpectedScoreSumsToOne(t *testing.T) {
	pairs := [][2]float64{
		{1500, 1500},
		{1600, 1400},
		{2400, 800},
		{1500.5, 1499.5},
		{0, 3000},
	}

	for k, v := range pairs {
		sum := expectedScore(v[0], v[1]) + expectedScore(v[1], v[0])
		if math.Abs(sum-1.0) > 1e-12 {
			t.Errorf("case #%d: expectancies sum to %f, not 1", k, sum)
		}
	}
}

func TestNewTeamRatingsMarginMonotonic(t *testing.T) {
	prevGain, prevLoss := 0.0, 0.0
	for margin := 0; margin <= 11; margin++ {
		winners, losers := newTeamRatings(1550, 1450, margin)
		gain, loss := winners-1550, 1450-losers

		if gain < prevGain {
			t.Errorf("margin %d: winner delta %f shrank below %f", margin, gain, prevGain)
		}
		if loss < prevLoss {
			t.Errorf("margin %d: loser delta %f shrank below %f", margin, loss, prevLoss)
		}

		prevGain, prevLoss = gain, loss
	}
}
