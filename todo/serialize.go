package todo

import "strings"

// Serialize writes records as list text, one line per record. Records
// without a create date are stamped with today at midday.
func Serialize(records []Record, today DateSpec) string {
	var builder strings.Builder
	for _, record := range records {
		builder.WriteString(FormatLine(record, today))
		builder.WriteByte('\n')
	}
	return builder.String()
}

// FormatLine renders a single record as a list line.
func FormatLine(record Record, today DateSpec) string {
	checkbox := "- [ ] "
	if record.IsComplete {
		checkbox = "- [x] "
	}

	created := today.WithClock(Midday)
	if record.CreateDate != nil {
		created = *record.CreateDate
	}

	parts := []string{created.String()}
	if description := lineDescription(record); description != "" {
		parts = append(parts, description)
	}
	if record.IsComplete && record.CompleteDate != nil {
		parts = append(parts, record.CompleteDate.String())
	}
	return checkbox + strings.Join(parts, " ")
}

func lineDescription(record Record) string {
	description := strings.TrimSpace(record.Description)
	if record.Link == nil {
		return description
	}
	markup := record.Link.Markup()
	if strings.Contains(description, markup) {
		return description
	}
	if description == "" {
		return markup
	}
	return markup + " " + description
}
