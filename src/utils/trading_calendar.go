package utils

import (
	"strings"
	"time"

	"k-stock-insight/src/logger"

	"github.com/scmhub/calendar"
)

// DefaultMIC is the Korea Exchange, home of every KOSPI and KOSDAQ listing.
const DefaultMIC = "xkrx"

// KRX regular session, used when no calendar can be loaded.
const (
	fallbackOpenMinute  = 9 * 60
	fallbackCloseMinute = 15*60 + 30
)

// TradingCalendar calculates trading days using scmhub/calendar.
type TradingCalendar struct {
	MIC      string
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// GetCalendar loads the calendar of mic, falling back to KRX and then to a
// plain Mon-Fri 09:00-15:30 Asia/Seoul session.
func GetCalendar(mic string, l *logger.Logger) *TradingCalendar {
	mic = strings.ToLower(mic)
	if mic == "" {
		mic = DefaultMIC
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil && mic != DefaultMIC {
		l.Warning("No calendar for MIC '%s', using %s", mic, DefaultMIC)
		mic = DefaultMIC
		cal = calendar.GetCalendar(DefaultMIC)
	}

	if cal == nil {
		l.Warning("Failed to load calendar for MIC '%s'. Using simple fallback (Mon-Fri 09:00-15:30 KST).", mic)
		return NewFallbackCalendar()
	}

	return &TradingCalendar{MIC: mic, Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// NewFallbackCalendar returns the weekday-only KRX session calendar.
func NewFallbackCalendar() *TradingCalendar {
	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		seoul = time.FixedZone("KST", 9*60*60)
	}
	return &TradingCalendar{MIC: DefaultMIC, Fallback: true, Timezone: seoul}
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	// Normalize to timezone if available
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsOpenOnMinute checks if the market is open at a specific minute.
func (tc *TradingCalendar) IsOpenOnMinute(t time.Time) bool {
	// Normalize to timezone if available
	if tc.Timezone != nil {
		t = t.In(tc.Timezone)
	}

	if tc.Fallback {
		if !tc.IsTradingDay(t) {
			return false
		}
		minute := t.Hour()*60 + t.Minute()
		return minute >= fallbackOpenMinute && minute < fallbackCloseMinute
	}

	return tc.Calendar.IsOpen(t)
}
