package todo

// Record is a single todo line.
type Record struct {
	// IsComplete is true when the checkbox is ticked.
	IsComplete bool `json:"is_complete"`

	// CreateDate is when the todo starts (nil if the line has no date).
	CreateDate *DateSpec `json:"create_date,omitempty"`

	// Description is the free text of the line. Any [[link]] markup and
	// recurrence marker stay in the text.
	Description string `json:"description"`

	// CompleteDate is when the todo was ticked (only meaningful when complete).
	CompleteDate *DateSpec `json:"complete_date,omitempty"`

	// Link is the first [[...]] reference in the description, if any.
	Link *Link `json:"link,omitempty"`

	// Recurring is the rule parsed from the description's marker, if any.
	Recurring *Recurrence `json:"recurring,omitempty"`

	// originIndex is the record's position in the file it was parsed from.
	originIndex int
}

// HasLink reports whether the record references another list.
func (r Record) HasLink() bool {
	return r.Link != nil
}

// Key returns the record's match key.
func (r Record) Key() MatchKey {
	return MatchKey{CreateDate: dateText(r.CreateDate), Description: r.Description}
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	out.CreateDate = cloneDate(r.CreateDate)
	out.CompleteDate = cloneDate(r.CompleteDate)
	out.Link = cloneLink(r.Link)
	out.Recurring = cloneRecurrence(r.Recurring)
	return out
}

// RecurringMarker returns the record's canonical recurrence marker, or "".
func (r Record) RecurringMarker() string {
	return r.Recurring.Marker()
}
