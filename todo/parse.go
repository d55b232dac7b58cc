package todo

import (
	"fmt"
	"regexp"
	"strings"

	internalstrings "github.com/amonks/mdtodo/internal/strings"
)

var (
	lineRegexp = regexp.MustCompile(`^-\s*\[([ x])\]\s*(.+)$`)
	linkRegexp = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
)

// Parse turns list text into records. Lines that are not todo lines are
// skipped. A malformed date leaves the corresponding field nil; Parse never
// fails.
func Parse(text string) []Record {
	lines := strings.Split(internalstrings.NormalizeNewlines(text), "\n")
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		record, ok := ParseLine(line)
		if !ok {
			continue
		}
		record.originIndex = len(records)
		records = append(records, record)
	}
	return records
}

// ParseLine parses a single todo line. It returns false for lines that do not
// match "- [ ] ..." or "- [x] ...".
func ParseLine(line string) (Record, bool) {
	m := lineRegexp.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Record{}, false
	}

	record := Record{IsComplete: m[1] == "x"}
	remainder := strings.TrimSpace(m[2])

	masked, links := maskLinks(remainder)
	if len(links) > 0 {
		record.Link = NewLink(links[0])
	}

	dates := validDateTokens(masked)
	var consumed [][2]int
	if len(dates) > 0 {
		record.CreateDate = &dates[0].date
		consumed = append(consumed, dates[0].span)
		if record.IsComplete && len(dates) > 1 {
			record.CompleteDate = &dates[1].date
			consumed = append(consumed, dates[1].span)
		}
	}

	description := internalstrings.NormalizeWhitespace(removeSpans(masked, consumed))
	record.Description = unmaskLinks(description, links)
	record.Recurring = ParseRecurrence(record.Description)
	return record, true
}

type dateToken struct {
	date DateSpec
	span [2]int
}

func validDateTokens(text string) []dateToken {
	var tokens []dateToken
	for _, loc := range dateTokenRegexp.FindAllStringIndex(text, -1) {
		parsed, ok := ParseDate(text[loc[0]:loc[1]])
		if !ok {
			continue
		}
		tokens = append(tokens, dateToken{date: parsed, span: [2]int{loc[0], loc[1]}})
	}
	return tokens
}

// removeSpans cuts the given byte ranges (in ascending order) out of text.
func removeSpans(text string, spans [][2]int) string {
	if len(spans) == 0 {
		return text
	}
	var builder strings.Builder
	prev := 0
	for _, span := range spans {
		builder.WriteString(text[prev:span[0]])
		builder.WriteByte(' ')
		prev = span[1]
	}
	builder.WriteString(text[prev:])
	return builder.String()
}

// maskLinks swaps every [[...]] span for a placeholder so link text cannot be
// read as a date. It returns the inner texts in order.
func maskLinks(text string) (string, []string) {
	var links []string
	masked := linkRegexp.ReplaceAllStringFunc(text, func(span string) string {
		inner := linkRegexp.FindStringSubmatch(span)[1]
		links = append(links, inner)
		return linkPlaceholder(len(links) - 1)
	})
	return masked, links
}

func unmaskLinks(text string, links []string) string {
	for i, inner := range links {
		text = strings.Replace(text, linkPlaceholder(i), "[["+inner+"]]", 1)
	}
	return text
}

func linkPlaceholder(i int) string {
	return fmt.Sprintf("\x00link%d\x00", i)
}
