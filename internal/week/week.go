package week

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the ISO 8601 calendar date format entries are stored in
const DateLayout = "2006-01-02"

// ErrUnknownWeekday is returned for names outside Monday..Sunday
var ErrUnknownWeekday = errors.New("unknown weekday")

// Weekdays lists the canonical weekday names, Monday first
var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayIndex maps a canonical weekday name to its Monday=0 index
func WeekdayIndex(name string) (int, error) {
	for i, day := range Weekdays {
		if day == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
}

// Span is seven consecutive dates, Monday through Sunday, at local midnight
type Span [7]time.Time

// Start returns the Monday of the span as an ISO date
func (s Span) Start() string {
	return s[0].Format(DateLayout)
}

// End returns the Sunday of the span as an ISO date
func (s Span) End() string {
	return s[6].Format(DateLayout)
}

// Dates returns all seven days as ISO dates
func (s Span) Dates() []string {
	dates := make([]string, len(s))
	for i, d := range s {
		dates[i] = d.Format(DateLayout)
	}
	return dates
}

// Contains reports whether the ISO date falls inside the span
func (s Span) Contains(date string) bool {
	return date >= s.Start() && date <= s.End()
}

// DateFor maps a weekday name to its date inside the span
func (s Span) DateFor(weekday string) (string, error) {
	i, err := WeekdayIndex(weekday)
	if err != nil {
		return "", err
	}
	return s[i].Format(DateLayout), nil
}

// Calculator computes week spans relative to Now
type Calculator struct {
	Now func() time.Time
}

// New returns a calculator on the wall clock
func New() Calculator {
	return Calculator{Now: time.Now}
}

func (c Calculator) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// CurrentWeek returns the span containing today
func (c Calculator) CurrentWeek() Span {
	return spanOf(c.now())
}

// WeeksAgo returns the span n whole weeks before the current one.
// Negative n addresses future weeks.
func (c Calculator) WeeksAgo(n int) Span {
	return spanOf(c.now().AddDate(0, 0, -7*n))
}

// SpanContaining returns the span holding the given ISO date
func (c Calculator) SpanContaining(date string) (Span, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return Span{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return spanOf(t), nil
}

// TodayName returns the canonical weekday name of today
func (c Calculator) TodayName() string {
	return c.now().Weekday().String()
}

// Label returns a human readable label for the span n weeks ago
func (c Calculator) Label(n int) string {
	monday := c.WeeksAgo(n).Start()
	switch {
	case n == 0:
		return fmt.Sprintf("Current Week (%s)", monday)
	case n == 1:
		return fmt.Sprintf("1 Week Ago (%s)", monday)
	case n == -1:
		return fmt.Sprintf("In 1 Week (%s)", monday)
	case n < 0:
		return fmt.Sprintf("In %d Weeks (%s)", -n, monday)
	default:
		return fmt.Sprintf("%d Weeks Ago (%s)", n, monday)
	}
}

// Labels returns labels for the current week and count-1 weeks before it.
// A count below one yields no labels.
func (c Calculator) Labels(count int) []string {
	if count <= 0 {
		return []string{}
	}
	labels := make([]string, 0, count)
	for i := 0; i < count; i++ {
		labels = append(labels, c.Label(i))
	}
	return labels
}

// spanOf returns the Monday-start week containing t
func spanOf(t time.Time) Span {
	daysFromMonday := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	monday := day.AddDate(0, 0, -daysFromMonday)

	var s Span
	for i := range s {
		s[i] = monday.AddDate(0, 0, i)
	}
	return s
}
