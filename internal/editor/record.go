package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	internalstrings "github.com/amonks/mdtodo/internal/strings"
	"github.com/amonks/mdtodo/todo"
)

// RecordData is the data rendered into the editor template.
type RecordData struct {
	Created     string
	Complete    bool
	Completed   string
	Description string
}

// DataFromRecord creates RecordData from an existing record for editing.
func DataFromRecord(r todo.Record) RecordData {
	data := RecordData{
		Complete:    r.IsComplete,
		Description: r.Description,
	}
	if r.CreateDate != nil {
		data.Created = r.CreateDate.String()
	}
	if r.CompleteDate != nil {
		data.Completed = r.CompleteDate.String()
	}
	return data
}

var recordTemplate = template.Must(template.New("record").Parse(`created = {{ printf "%q" .Created }} # HH:MM:SS DD-mon-YYYY or DD-mon-YYYY
complete = {{ .Complete }}
completed = {{ printf "%q" .Completed }} # empty stamps the time of saving
---
{{ .Description }}
`))

// RenderRecordTOML renders the record data as a TOML string for editing.
func RenderRecordTOML(data RecordData) (string, error) {
	var buf bytes.Buffer
	if err := recordTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedRecord is the result of editing a record.
type ParsedRecord struct {
	Created     string `toml:"created"`
	Complete    bool   `toml:"complete"`
	Completed   string `toml:"completed"`
	Description string `toml:"-"`

	createDate   *todo.DateSpec
	completeDate *todo.DateSpec
}

// ParseRecordTOML parses the TOML content from the editor. The body below
// the separator is the description; line breaks in it become spaces.
func ParseRecordTOML(content string) (*ParsedRecord, error) {
	frontmatter, body := splitFrontmatter(internalstrings.NormalizeNewlines(content))

	var parsed ParsedRecord
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Description = internalstrings.NormalizeWhitespace(body)
	if parsed.Description == "" {
		return nil, todo.ErrEmptyDescription
	}

	var err error
	if parsed.createDate, err = parseOptionalDate("created", parsed.Created); err != nil {
		return nil, err
	}
	if parsed.completeDate, err = parseOptionalDate("completed", parsed.Completed); err != nil {
		return nil, err
	}

	return &parsed, nil
}

func parseOptionalDate(field, value string) (*todo.DateSpec, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, ok := todo.ParseDate(value)
	if !ok {
		return nil, fmt.Errorf("%w: %s = %q", todo.ErrInvalidDate, field, value)
	}
	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

// Apply returns edit updated with the parsed values. The match key is left
// alone so the reconciler can still find the original row.
func (p *ParsedRecord) Apply(edit todo.ProposedEdit) todo.ProposedEdit {
	edit.Description = p.Description
	edit.CreateDate = p.createDate
	edit.IsComplete = p.Complete
	edit.CompleteDate = nil
	if p.Complete {
		edit.CompleteDate = p.completeDate
	}
	edit.Link = todo.FindLink(p.Description)
	edit.RecurringMarker = ""
	if rule := todo.ParseRecurrence(p.Description); rule != nil {
		edit.RecurringMarker = rule.Marker()
	}
	return edit
}

// EditRecord opens the editor on record and returns the parsed result.
func EditRecord(record todo.Record) (*ParsedRecord, error) {
	content, err := RenderRecordTOML(DataFromRecord(record))
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "mdtodo-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseRecordTOML(string(edited))
}
