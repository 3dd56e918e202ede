package back // nolint:testpackage

import (
	"testing"
	"time"
)

func TestPeriodCutoff(t *testing.T) {
	now, err := time.Parse("2006-01-02 15:04 MST", "2020-05-15 02:00 UTC")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		period   Period
		expected string
	}{
		{PeriodWeek, "2020-05-08"},
		{PeriodMonth, "2020-04-15"},
		{PeriodYear, "2019-05-15"},
	}

	for k, v := range cases {
		actual := v.period.Cutoff(now).Format("2006-01-02")
		if actual != v.expected {
			t.Errorf("case #%d: expected %s got %s", k, v.expected, actual)
		}
	}

	if !PeriodAll.Cutoff(now).IsZero() {
		t.Error("the all-time cutoff should be the zero time")
	}
}

func TestNewRankingPeriod(t *testing.T) {
	for _, v := range []string{"week", "month", "year"} {
		if _, err := NewRankingPeriod(v); err != nil {
			t.Errorf("expected %s to be a valid ranking period: %s", v, err)
		}
	}

	for _, v := range []string{"", "all", "day", "fortnight"} {
		if _, err := NewRankingPeriod(v); err == nil {
			t.Errorf("expected %q to be rejected", v)
		}
	}
}

func TestNewRelationPeriod(t *testing.T) {
	for _, v := range []string{"", "month", "year"} {
		if _, err := NewRelationPeriod(v); err != nil {
			t.Errorf("expected %q to be a valid relation period: %s", v, err)
		}
	}

	if _, err := NewRelationPeriod("week"); err == nil {
		t.Error("expected week to be rejected")
	}
}
