// Package period resolves the (year, month) a request works against.
package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is a calendar month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Of returns the period containing t.
func Of(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Valid reports whether the month is within 1..12 and the year is positive.
func (p Period) Valid() bool {
	return p.Year > 0 && p.Month >= 1 && p.Month <= 12
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Parse reads a year/month pair from raw request values. Both values must be
// present and well formed; anything else reports ok=false.
func Parse(year, month string) (Period, bool) {
	year, month = strings.TrimSpace(year), strings.TrimSpace(month)
	if year == "" || month == "" {
		return Period{}, false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return Period{}, false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return Period{}, false
	}
	p := Period{Year: y, Month: m}
	if !p.Valid() {
		return Period{}, false
	}
	return p, true
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Period Period
	// Persist is set when an explicit selection should become the new default.
	Persist bool
	// Selected is false when neither an explicit nor a stored period exists.
	Selected bool
}

// Resolve picks the active period: an explicit selection wins and is persisted,
// then the stored default, then the calendar month of now.
func Resolve(explicit, stored *Period, now time.Time) Resolution {
	if explicit != nil && explicit.Valid() {
		return Resolution{Period: *explicit, Persist: true, Selected: true}
	}
	if stored != nil && stored.Valid() {
		return Resolution{Period: *stored, Selected: true}
	}
	return Resolution{Period: Of(now)}
}

// Lookup picks the period for a single request without changing the default:
// an explicit selection applies to this request only. Selected reports whether
// a stored default exists.
func Lookup(explicit, stored *Period, now time.Time) Resolution {
	selected := stored != nil && stored.Valid()
	switch {
	case explicit != nil && explicit.Valid():
		return Resolution{Period: *explicit, Selected: selected}
	case selected:
		return Resolution{Period: *stored, Selected: true}
	}
	return Resolution{Period: Of(now)}
}

// WorkingDays counts Monday to Friday dates in the given month.
func WorkingDays(year, month int) int {
	if !(Period{Year: year, Month: month}).Valid() {
		return 0
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := 0
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
