package todo

import (
	"testing"
	"time"
)

// mustDate parses date text or fails the test.
func mustDate(t *testing.T, text string) *DateSpec {
	t.Helper()
	parsed, ok := ParseDate(text)
	if !ok {
		t.Fatalf("failed to parse date %q", text)
	}
	return &parsed
}

// mustLine parses a single list line or fails the test.
func mustLine(t *testing.T, line string) Record {
	t.Helper()
	record, ok := ParseLine(line)
	if !ok {
		t.Fatalf("failed to parse line %q", line)
	}
	return record
}

// at builds a UTC instant on the given day of November 2025.
func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.November, day, hour, minute, 0, 0, time.UTC)
}

func descriptions(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, record.Description)
	}
	return out
}
