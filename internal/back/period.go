package back

import (
	"time"

	"kicker/internal/util"
)

// Period is a named recency window used to filter sessions for rolling
// statistics. The cutoff is always computed once from a single reference
// time so every sub-query of one request agrees on the window.
type Period string

const (
	PeriodAll   Period = ""
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Cutoff returns the start of the window, the zero time for PeriodAll so it
// can be compared against any stored game date.
func (p Period) Cutoff(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

func (p Period) Label() string {
	switch p {
	case PeriodWeek:
		return "Weekly rankings"
	case PeriodMonth:
		return "Monthly rankings"
	case PeriodYear:
		return "Yearly rankings"
	default:
		return "Rankings"
	}
}

// NewRankingPeriod parses a user-supplied ranking period, which unlike
// relationship windows must be bounded.
func NewRankingPeriod(str string) (Period, error) {
	switch p := Period(str); p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	default:
		return PeriodAll, util.ErrPublic("rankings exist over a week, month, or year")
	}
}

// NewRelationPeriod parses a user-supplied teammate/opponent window, an
// empty string means all-time.
func NewRelationPeriod(str string) (Period, error) {
	switch p := Period(str); p {
	case PeriodAll, PeriodMonth, PeriodYear:
		return p, nil
	default:
		return PeriodAll, util.ErrPublic("relationship stats exist over a month, a year, or all-time")
	}
}
