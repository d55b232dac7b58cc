package todo

import (
	"errors"
	"testing"
)

func TestParseInput(t *testing.T) {
	now := at(3, 9, 30)

	tests := []struct {
		input       string
		created     string
		description string
		link        string
		marker      string
	}{
		{input: "Call Bob", created: "09:30:00 03-nov-2025", description: "Call Bob"},
		{input: "  Call   Bob  ", created: "09:30:00 03-nov-2025", description: "Call Bob"},
		{input: "05-nov-2025 Dentist", created: "05-nov-2025", description: "Dentist"},
		{input: "14:30:00 05-Nov-2025 Dentist", created: "14:30:00 05-nov-2025", description: "Dentist"},
		{input: "31-feb-2025 not a date", created: "09:30:00 03-nov-2025", description: "31-feb-2025 not a date"},
		{input: "Dentist 05-nov-2025", created: "09:30:00 03-nov-2025", description: "Dentist 05-nov-2025"},
		{input: "[[Groceries]] eggs", created: "09:30:00 03-nov-2025", description: "[[Groceries]] eggs", link: "Groceries"},
		{input: "Stretch #d", created: "09:30:00 03-nov-2025", description: "Stretch #d", marker: "#d"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			record, err := ParseInput(tt.input, now)
			if err != nil {
				t.Fatalf("ParseInput: %v", err)
			}
			if record.IsComplete {
				t.Error("new record should be open")
			}
			if got := dateText(record.CreateDate); got != tt.created {
				t.Errorf("CreateDate = %q, want %q", got, tt.created)
			}
			if record.Description != tt.description {
				t.Errorf("Description = %q, want %q", record.Description, tt.description)
			}
			var link string
			if record.Link != nil {
				link = record.Link.Text
			}
			if link != tt.link {
				t.Errorf("Link = %q, want %q", link, tt.link)
			}
			if got := record.RecurringMarker(); got != tt.marker {
				t.Errorf("RecurringMarker = %q, want %q", got, tt.marker)
			}
		})
	}
}

func TestParseInputEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		if _, err := ParseInput(input, at(3, 9, 0)); !errors.Is(err, ErrEmptyDescription) {
			t.Errorf("ParseInput(%q) error = %v, want ErrEmptyDescription", input, err)
		}
	}
}

func TestAddEditNeverMatches(t *testing.T) {
	record, err := ParseInput("01-nov-2025 existing", at(3, 9, 0))
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	authoritative := Parse("- [ ] 01-nov-2025 existing\n")

	got := Reconcile(authoritative, []ProposedEdit{AddEdit(record)}, DateOf(at(3, 9, 0)))
	if len(got) != 2 {
		t.Errorf("expected the add to create a second record, got %d", len(got))
	}
}
