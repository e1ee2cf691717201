package utils

import (
	"time"

	"github.com/scmhub/calendar"
)

// -----------------------------------------------------------------------------
// Trading-day check for ingested file dates. A snapshot dated on a weekend or
// exchange holiday almost always means a misnamed file, so the loader warns.
// -----------------------------------------------------------------------------

// TradingCalendar calculates trading days using scmhub/calendar.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
}

// -----------------------------------------------------------------------------

// GetCalendar loads the exchange calendar for a MIC code (ISO 10383,
// e.g. "xist" for Borsa Istanbul). When the MIC is unknown the check falls
// back to plain Mon-Fri.
func GetCalendar(mic string) *TradingCalendar {
	cal := calendar.GetCalendar(mic)
	if cal == nil {
		return &TradingCalendar{Fallback: true}
	}
	return &TradingCalendar{Calendar: cal}
}

// -----------------------------------------------------------------------------

// IsTradingDay reports whether a YYYY-MM-DD calendar date is a trading day.
// Unparsable dates count as trading days so the check never blocks ingestion.
func (tc *TradingCalendar) IsTradingDay(date string) bool {
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return true
	}
	if tc.Fallback || tc.Calendar == nil {
		wd := t.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(t)
}
