package back // nolint:testpackage

import "testing"

func TestRatio(t *testing.T) {
	cases := []struct {
		wins, losses, expected int
	}{
		{0, 0, 0},
		{1, 0, 100},
		{0, 1, 0},
		{1, 1, 50},
		{1, 2, 33},
		{2, 1, 67},
		{5, 0, 100},
		{33, 67, 33},
	}

	for k, v := range cases {
		if actual := Ratio(v.wins, v.losses); actual != v.expected {
			t.Errorf("case #%d: expected ratio %d got %d", k, v.expected, actual)
		}
	}
}
