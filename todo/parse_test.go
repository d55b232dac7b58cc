package todo

import "testing"

func TestParseLine(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		complete    bool
		created     string
		completed   string
		description string
		link        string
		marker      string
	}{
		{
			name:        "open with time",
			line:        "- [ ] 09:15:00 02-nov-2025 Call Bob #w:mon:fri",
			created:     "09:15:00 02-nov-2025",
			description: "Call Bob #w:mon:fri",
			marker:      "#w:mon:fri",
		},
		{
			name:        "complete with completion date",
			line:        "- [x] 01-nov-2025 Wash car 10:00:00 03-nov-2025",
			complete:    true,
			created:     "01-nov-2025",
			completed:   "10:00:00 03-nov-2025",
			description: "Wash car",
		},
		{
			name:        "complete without completion date",
			line:        "- [x] 01-nov-2025 Wash car",
			complete:    true,
			created:     "01-nov-2025",
			description: "Wash car",
		},
		{
			name:        "complete takes the second date",
			line:        "- [x] 01-nov-2025 move 02-nov-2025 meeting 03-nov-2025",
			complete:    true,
			created:     "01-nov-2025",
			completed:   "02-nov-2025",
			description: "move meeting 03-nov-2025",
		},
		{
			name:        "complete with three trailing dates",
			line:        "- [x] 01-nov-2025 meet 02-nov-2025 03-nov-2025",
			complete:    true,
			created:     "01-nov-2025",
			completed:   "02-nov-2025",
			description: "meet 03-nov-2025",
		},
		{
			name:        "open keeps later dates in text",
			line:        "- [ ] 01-nov-2025 review on 05-nov-2025",
			created:     "01-nov-2025",
			description: "review on 05-nov-2025",
		},
		{
			name:        "date after text",
			line:        "- [ ] Call 01-nov-2025 Bob",
			created:     "01-nov-2025",
			description: "Call Bob",
		},
		{
			name:        "link",
			line:        "- [ ] 01-nov-2025 [[Buy Milk]]",
			created:     "01-nov-2025",
			description: "[[Buy Milk]]",
			link:        "Buy Milk",
		},
		{
			name:        "first link wins",
			line:        "- [ ] 01-nov-2025 [[One]] then [[Two]]",
			created:     "01-nov-2025",
			description: "[[One]] then [[Two]]",
			link:        "One",
		},
		{
			name:        "date inside link is not a date",
			line:        "- [ ] [[01-nov-2025]] notes",
			description: "[[01-nov-2025]] notes",
			link:        "01-nov-2025",
		},
		{
			name:        "invalid date stays in text",
			line:        "- [ ] 31-feb-2025 Bad date",
			description: "31-feb-2025 Bad date",
		},
		{
			name:        "no date",
			line:        "- [ ] Just text",
			description: "Just text",
		},
		{
			name:        "uppercase month",
			line:        "- [ ] 01-NOV-2025 shout",
			created:     "01-nov-2025",
			description: "shout",
		},
		{
			name:        "loose spacing",
			line:        "  -[ ]   01-nov-2025    lots   of   space  ",
			created:     "01-nov-2025",
			description: "lots of space",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := mustLine(t, tt.line)
			if record.IsComplete != tt.complete {
				t.Errorf("IsComplete = %v, want %v", record.IsComplete, tt.complete)
			}
			if got := dateText(record.CreateDate); got != tt.created {
				t.Errorf("CreateDate = %q, want %q", got, tt.created)
			}
			if got := dateText(record.CompleteDate); got != tt.completed {
				t.Errorf("CompleteDate = %q, want %q", got, tt.completed)
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

func TestParseLineRejects(t *testing.T) {
	for _, line := range []string{
		"",
		"# Heading",
		"* [ ] wrong bullet",
		"- [X] uppercase box",
		"- [ ]",
		"- [-] 01-nov-2025 unknown state",
		"plain text",
	} {
		if record, ok := ParseLine(line); ok {
			t.Errorf("ParseLine(%q) = %+v, want no record", line, record)
		}
	}
}

func TestParseLinkTargetKey(t *testing.T) {
	record := mustLine(t, "- [ ] 01-nov-2025 [[Summer Trip Ideas]]")
	if record.Link == nil {
		t.Fatal("expected link")
	}
	if record.Link.TargetKey != "summer_trip_ideas" {
		t.Errorf("TargetKey = %q, want %q", record.Link.TargetKey, "summer_trip_ideas")
	}
}

func TestParseSkipsOtherLines(t *testing.T) {
	text := "# Groceries\r\n" +
		"- [ ] 01-nov-2025 eggs\r\n" +
		"\r\n" +
		"some note\n" +
		"- [x] 01-nov-2025 bread 02-nov-2025\n"

	records := Parse(text)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Description != "eggs" || records[1].Description != "bread" {
		t.Errorf("unexpected descriptions %q", descriptions(records))
	}
	if records[0].originIndex != 0 || records[1].originIndex != 1 {
		t.Errorf("unexpected origin indexes %d, %d", records[0].originIndex, records[1].originIndex)
	}
}

func TestParseEmpty(t *testing.T) {
	if records := Parse(""); len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
