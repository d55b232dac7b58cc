package todo

import (
	"regexp"
	"strings"
	"time"

	internalstrings "github.com/amonks/mdtodo/internal/strings"
)

var leadingDateRegexp = regexp.MustCompile(`(?i)^(` + dateTokenPattern + `)\s+(.+)$`)

// ParseInput turns free text typed into an "add" box into a new open record.
// The text may start with a date; otherwise the record starts at now.
func ParseInput(input string, now time.Time) (Record, error) {
	text := internalstrings.NormalizeWhitespace(input)
	if text == "" {
		return Record{}, ErrEmptyDescription
	}

	record := Record{}
	created := DateOf(now)
	if m := leadingDateRegexp.FindStringSubmatch(text); m != nil {
		if parsed, ok := ParseDate(m[1]); ok {
			created = parsed
			text = strings.TrimSpace(m[2])
		}
	}
	record.CreateDate = &created

	record.Link = FindLink(text)
	record.Description = text
	record.Recurring = ParseRecurrence(text)
	return record, nil
}

// AddEdit returns the proposed edit that adds record. Its key matches nothing
// in the list, so reconciliation treats it as new.
func AddEdit(record Record) ProposedEdit {
	edit := EditFromRecord(record)
	edit.Key = MatchKey{CreateDate: "\x00new", Description: edit.Key.Description}
	return edit
}
