package todo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monthNames are the fixed month tokens used in list files.
var monthNames = [...]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

const dateTokenPattern = `(?:\d{2}:\d{2}:\d{2}\s+)?\d{2}-[a-zA-Z]{3}-\d{4}`

var (
	dateTokenRegexp = regexp.MustCompile(dateTokenPattern)
	dateExactRegexp = regexp.MustCompile(`^(?:(\d{2}):(\d{2}):(\d{2})\s+)?(\d{2})-([a-zA-Z]{3})-(\d{4})$`)
)

// Clock is a time of day.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// Midday is the time used when a date carries no time of day.
var Midday = Clock{Hour: 12}

// String formats the clock as HH:MM:SS.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// DateSpec is a calendar date with an optional time of day.
type DateSpec struct {
	Year  int
	Month time.Month
	Day   int
	Time  *Clock
}

// DateOf returns the DateSpec for t, including its time of day.
func DateOf(t time.Time) DateSpec {
	clock := Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
	return DateSpec{Year: t.Year(), Month: t.Month(), Day: t.Day(), Time: &clock}
}

// DayOf returns the DateSpec for t without a time of day.
func DayOf(t time.Time) DateSpec {
	return DateSpec{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// HasTime reports whether the date carries a time of day.
func (d DateSpec) HasTime() bool {
	return d.Time != nil
}

// Clock returns the time of day, defaulting to Midday.
func (d DateSpec) Clock() Clock {
	if d.Time == nil {
		return Midday
	}
	return *d.Time
}

// WithClock returns a copy of d at the given time of day.
func (d DateSpec) WithClock(c Clock) DateSpec {
	d.Time = &c
	return d
}

// In returns the instant d denotes in loc. Dates without a time are read as midday.
func (d DateSpec) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	c := d.Clock()
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, c.Second, 0, loc)
}

// Timestamp returns d as unix seconds in UTC, for ordering.
func (d DateSpec) Timestamp() int64 {
	return d.In(time.UTC).Unix()
}

// String renders the canonical form: "HH:MM:SS DD-mon-YYYY" or "DD-mon-YYYY".
func (d DateSpec) String() string {
	day := fmt.Sprintf("%02d-%s-%04d", d.Day, monthName(d.Month), d.Year)
	if d.Time == nil {
		return day
	}
	return d.Time.String() + " " + day
}

// Equal reports whether two dates have the same fields.
func (d DateSpec) Equal(other DateSpec) bool {
	if d.Year != other.Year || d.Month != other.Month || d.Day != other.Day {
		return false
	}
	if d.Time == nil || other.Time == nil {
		return d.Time == nil && other.Time == nil
	}
	return *d.Time == *other.Time
}

// MarshalText implements encoding.TextMarshaler.
func (d DateSpec) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DateSpec) UnmarshalText(text []byte) error {
	parsed, ok := ParseDate(string(text))
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDate, string(text))
	}
	*d = parsed
	return nil
}

// ParseDate parses "HH:MM:SS DD-mon-YYYY" or "DD-mon-YYYY". The month is
// case-insensitive. Out-of-range fields fail.
func ParseDate(text string) (DateSpec, bool) {
	m := dateExactRegexp.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return DateSpec{}, false
	}

	month, ok := monthFromName(m[5])
	if !ok {
		return DateSpec{}, false
	}
	day, _ := strconv.Atoi(m[4])
	year, _ := strconv.Atoi(m[6])
	if day < 1 || day > daysIn(year, month) {
		return DateSpec{}, false
	}

	parsed := DateSpec{Year: year, Month: month, Day: day}
	if m[1] != "" {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		second, _ := strconv.Atoi(m[3])
		if hour > 23 || minute > 59 || second > 59 {
			return DateSpec{}, false
		}
		parsed.Time = &Clock{Hour: hour, Minute: minute, Second: second}
	}
	return parsed, true
}

// dateText returns the canonical text of d, or "" when nil.
func dateText(d *DateSpec) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func cloneDate(d *DateSpec) *DateSpec {
	if d == nil {
		return nil
	}
	out := *d
	if d.Time != nil {
		c := *d.Time
		out.Time = &c
	}
	return &out
}

func monthName(m time.Month) string {
	if m < time.January || m > time.December {
		return "???"
	}
	return monthNames[m-1]
}

func monthFromName(name string) (time.Month, bool) {
	name = strings.ToLower(name)
	for i, candidate := range monthNames {
		if candidate == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
