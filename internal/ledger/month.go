// Package ledger turns the clinic's transactions and expenses into daily
// and monthly summaries.
package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the storage layout for ledger and appointment dates.
const DateLayout = "2006-01-02"

// ErrInvalidPeriod is returned for malformed dates or months.
var ErrInvalidPeriod = errors.New("ledger: invalid period")

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth reads year and month query values. Empty values fall back to now.
func ParseMonth(year, month string, now time.Time) (Month, error) {
	m := MonthOf(now)
	if year != "" {
		y, err := strconv.Atoi(year)
		if err != nil || y < 1 || y > 9999 {
			return Month{}, fmt.Errorf("%w: year %q", ErrInvalidPeriod, year)
		}
		m.Year = y
	}
	if month != "" {
		mm, err := strconv.Atoi(month)
		if err != nil || mm < 1 || mm > 12 {
			return Month{}, fmt.Errorf("%w: month %q", ErrInvalidPeriod, month)
		}
		m.Month = time.Month(mm)
	}
	return m, nil
}

// Range returns the first and last date of the month in DateLayout.
func (m Month) Range() (string, string) {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// ParseDate validates a YYYY-MM-DD date, defaulting to today when empty.
func ParseDate(value string, now time.Time) (string, error) {
	if value == "" {
		return now.Format(DateLayout), nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return "", fmt.Errorf("%w: date %q", ErrInvalidPeriod, value)
	}
	return t.Format(DateLayout), nil
}
