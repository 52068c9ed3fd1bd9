// Package schedule decides whether an appointment slot falls inside the
// clinic's opening hours.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"goodsmile/clinic/internal/bangla"
)

var (
	ErrClosedDay    = errors.New("schedule: clinic is closed on that day")
	ErrOutsideHours = errors.New("schedule: outside clinic hours")
	ErrInvalidSlot  = errors.New("schedule: invalid date or time")
)

// Window is an opening period in whole hours, [Start, End).
type Window struct {
	Start int
	End   int
}

// Policy is the weekly opening pattern of the chamber.
type Policy struct {
	ClosedDay time.Weekday
	Windows   []Window
}

// DefaultPolicy is 10am–1pm and 5pm–9pm, closed on Tuesday.
func DefaultPolicy() Policy {
	return Policy{
		ClosedDay: time.Tuesday,
		Windows:   []Window{{Start: 10, End: 13}, {Start: 17, End: 21}},
	}
}

// Check validates a YYYY-MM-DD date and an HH:MM (or HH:MM:SS) time. Only the
// hour is compared against the windows.
func (p Policy) Check(date, clock string) error {
	day, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidSlot, date)
	}
	hour, err := parseHour(clock)
	if err != nil {
		return err
	}
	if day.Weekday() == p.ClosedDay {
		return ErrClosedDay
	}
	for _, w := range p.Windows {
		if hour >= w.Start && hour < w.End {
			return nil
		}
	}
	return ErrOutsideHours
}

func parseHour(clock string) (int, error) {
	clock = strings.TrimSpace(clock)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return t.Hour(), nil
		}
	}
	return 0, fmt.Errorf("%w: time %q", ErrInvalidSlot, clock)
}

// ClosedDayMessage is shown to staff when a booking lands on the closed day.
func (p Policy) ClosedDayMessage() string {
	return bangla.Weekday(p.ClosedDay) + " চেম্বার বন্ধ থাকে।"
}

// HoursMessage lists the opening windows, e.g.
// "চেম্বার সকাল ১০টা-১টা এবং বিকাল ৫টা-৯টা পর্যন্ত খোলা থাকে।".
func (p Policy) HoursMessage() string {
	parts := make([]string, 0, len(p.Windows))
	for _, w := range p.Windows {
		period := "সকাল"
		if w.Start >= 12 {
			period = "বিকাল"
		}
		parts = append(parts, fmt.Sprintf("%s %sটা-%sটা", period, clockHour(w.Start), clockHour(w.End)))
	}
	return "চেম্বার " + strings.Join(parts, " এবং ") + " পর্যন্ত খোলা থাকে।"
}

func clockHour(h int) string {
	h %= 12
	if h == 0 {
		h = 12
	}
	return bangla.Digits(strconv.Itoa(h))
}

// ParseWeekday accepts English day names ("tuesday", "Tue") or 0–6.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 6 {
		return time.Weekday(n), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("schedule: unknown weekday %q", s)
}
