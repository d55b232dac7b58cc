package todo

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// RecurrenceKind identifies how a recurring todo repeats.
type RecurrenceKind string

const (
	// RecurDaily repeats the day after completion.
	RecurDaily RecurrenceKind = "daily"

	// RecurWeekly repeats on the next listed weekday.
	RecurWeekly RecurrenceKind = "weekly"

	// RecurMonthly repeats on the next listed day of the month.
	RecurMonthly RecurrenceKind = "monthly"
)

// Recurrence is a parsed recurrence marker. Weekly rules carry a non-empty
// Weekdays set and monthly rules a non-empty MonthDays set; ParseRecurrence
// never builds an empty rule.
type Recurrence struct {
	Kind      RecurrenceKind
	Weekdays  []time.Weekday
	MonthDays []int
}

var (
	dailyMarkerRegexp   = regexp.MustCompile(`#d\b`)
	weeklyMarkerRegexp  = regexp.MustCompile(`(?i)#w:([a-z]{3}(?::[a-z]{3})*)`)
	monthlyMarkerRegexp = regexp.MustCompile(`#m:(\d+(?:,\d+)*)`)
)

var weekdayCodes = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseRecurrence extracts the recurrence marker embedded in text.
// Precedence is #d, then #w:..., then #m:.... A marker whose codes are all
// unknown yields nil.
func ParseRecurrence(text string) *Recurrence {
	if dailyMarkerRegexp.MatchString(text) {
		return &Recurrence{Kind: RecurDaily}
	}

	if m := weeklyMarkerRegexp.FindStringSubmatch(text); m != nil {
		var days []time.Weekday
		for _, code := range strings.Split(strings.ToLower(m[1]), ":") {
			day, ok := weekdayCodes[code]
			if ok && !slices.Contains(days, day) {
				days = append(days, day)
			}
		}
		if len(days) == 0 {
			return nil
		}
		return &Recurrence{Kind: RecurWeekly, Weekdays: days}
	}

	if m := monthlyMarkerRegexp.FindStringSubmatch(text); m != nil {
		var days []int
		for _, field := range strings.Split(m[1], ",") {
			day, err := strconv.Atoi(field)
			if err != nil || day < 1 || day > 31 {
				continue
			}
			if !slices.Contains(days, day) {
				days = append(days, day)
			}
		}
		if len(days) == 0 {
			return nil
		}
		slices.Sort(days)
		return &Recurrence{Kind: RecurMonthly, MonthDays: days}
	}

	return nil
}

// Marker returns the canonical marker text for the rule.
func (r *Recurrence) Marker() string {
	if r == nil {
		return ""
	}
	switch r.Kind {
	case RecurDaily:
		return "#d"
	case RecurWeekly:
		codes := make([]string, 0, len(r.Weekdays))
		for _, day := range r.Weekdays {
			codes = append(codes, strings.ToLower(day.String()[:3]))
		}
		return "#w:" + strings.Join(codes, ":")
	case RecurMonthly:
		nums := make([]string, 0, len(r.MonthDays))
		for _, day := range r.MonthDays {
			nums = append(nums, strconv.Itoa(day))
		}
		return "#m:" + strings.Join(nums, ",")
	default:
		return ""
	}
}

// MarshalText renders the rule as its marker.
func (r Recurrence) MarshalText() ([]byte, error) {
	return []byte(r.Marker()), nil
}

// UnmarshalText parses a marker such as "#w:mon:fri".
func (r *Recurrence) UnmarshalText(text []byte) error {
	parsed := ParseRecurrence(string(text))
	if parsed == nil {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrence, string(text))
	}
	*r = *parsed
	return nil
}

func cloneRecurrence(r *Recurrence) *Recurrence {
	if r == nil {
		return nil
	}
	return &Recurrence{
		Kind:      r.Kind,
		Weekdays:  slices.Clone(r.Weekdays),
		MonthDays: slices.Clone(r.MonthDays),
	}
}

// NextOccurrence returns the create date of the todo that follows a
// completion. The date advances from completedAt; the time of day comes from
// originalCreate, or Midday when it has none.
func NextOccurrence(rule Recurrence, completedAt, originalCreate DateSpec) DateSpec {
	base := time.Date(completedAt.Year, completedAt.Month, completedAt.Day, 0, 0, 0, 0, time.UTC)

	var next time.Time
	switch rule.Kind {
	case RecurWeekly:
		next = nextWeekly(base, rule.Weekdays)
	case RecurMonthly:
		next = nextMonthly(base, rule.MonthDays)
	default:
		next = base.AddDate(0, 0, 1)
	}

	return DayOf(next).WithClock(originalCreate.Clock())
}

func nextWeekly(base time.Time, weekdays []time.Weekday) time.Time {
	for offset := 1; offset <= 7; offset++ {
		candidate := base.AddDate(0, 0, offset)
		if slices.Contains(weekdays, candidate.Weekday()) {
			return candidate
		}
	}
	return base.AddDate(0, 0, 7)
}

func nextMonthly(base time.Time, monthDays []int) time.Time {
	if len(monthDays) == 0 {
		return base.AddDate(0, 1, 0)
	}
	days := slices.Clone(monthDays)
	slices.Sort(days)

	year, month, today := base.Date()
	length := daysIn(year, month)
	for _, day := range days {
		if day > today && day <= length {
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		}
	}

	first := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	nextYear, nextMonth, _ := first.Date()
	day := min(days[0], daysIn(nextYear, nextMonth))
	return time.Date(nextYear, nextMonth, day, 0, 0, 0, 0, time.UTC)
}
