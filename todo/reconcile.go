package todo

import (
	"slices"
	"strings"
)

// MatchKey identifies a record across an edit round trip: the canonical text
// of its create date and its description, as they were when the client
// loaded the list.
type MatchKey struct {
	CreateDate  string `json:"create_date"`
	Description string `json:"description"`
}

// canonical rewrites the key's date in list form, so a key sent as
// "03-Nov-2025" finds the record written as "03-nov-2025".
func (k MatchKey) canonical() MatchKey {
	if parsed, ok := ParseDate(k.CreateDate); ok {
		k.CreateDate = parsed.String()
	}
	return k
}

// String renders the key for logs and errors.
func (k MatchKey) String() string {
	return strings.TrimSpace(k.CreateDate + " " + k.Description)
}

// ProposedEdit is one row of a client's submitted view. Key holds the values
// the row was loaded with; the remaining fields are the row's current values.
type ProposedEdit struct {
	Key             MatchKey  `json:"key"`
	Description     string    `json:"description"`
	CreateDate      *DateSpec `json:"create_date,omitempty"`
	CompleteDate    *DateSpec `json:"complete_date,omitempty"`
	IsComplete      bool      `json:"is_complete"`
	Link            *Link     `json:"link,omitempty"`
	RecurringMarker string    `json:"recurring_marker,omitempty"`
}

// EditFromRecord returns the edit a client submits for an untouched row.
func EditFromRecord(record Record) ProposedEdit {
	return ProposedEdit{
		Key:             record.Key(),
		Description:     record.Description,
		CreateDate:      cloneDate(record.CreateDate),
		CompleteDate:    cloneDate(record.CompleteDate),
		IsComplete:      record.IsComplete,
		Link:            cloneLink(record.Link),
		RecurringMarker: record.RecurringMarker(),
	}
}

// EditsFromRecords returns unchanged edits for each record, in order.
func EditsFromRecords(records []Record) []ProposedEdit {
	edits := make([]ProposedEdit, 0, len(records))
	for _, record := range records {
		edits = append(edits, EditFromRecord(record))
	}
	return edits
}

// record builds the record an edit describes, without completion stamping.
func (e ProposedEdit) record() Record {
	record := Record{
		IsComplete:   e.IsComplete,
		CreateDate:   cloneDate(e.CreateDate),
		Description:  strings.TrimSpace(e.Description),
		CompleteDate: cloneDate(e.CompleteDate),
		Link:         cloneLink(e.Link),
	}
	if record.Link != nil && record.Link.TargetKey == "" {
		record.Link.TargetKey = LinkTargetKey(record.Link.Text)
	}
	record.Recurring = ParseRecurrence(record.Description)
	if record.Recurring == nil && e.RecurringMarker != "" {
		// the marker lives in the text, so a marker sent on its own is appended
		if rule := ParseRecurrence(e.RecurringMarker); rule != nil {
			record.Recurring = rule
			record.Description = strings.TrimSpace(record.Description + " " + rule.Marker())
		}
	}
	if !record.IsComplete {
		record.CompleteDate = nil
	}
	return record
}

// Reconcile merges a client's proposed view into the authoritative records.
//
// Rows are matched by the key they were loaded with. When the rows common to
// both sides arrive in a different order than the file holds them, the
// client's order wins and rows the client never saw are appended after them;
// otherwise every record keeps its file position. Records that become
// complete are stamped with now when they carry no completion date, and
// recurring ones gain a successor. Edits whose key matches nothing are new
// records. The result is in canonical order.
//
// When two authoritative records share a key, the later one is the lookup
// target and both receive the same edit. When several edits share a key that
// is in the file, the last one wins and the row keeps the position of the
// first. Edits whose key is not in the file are all added, even when their
// keys repeat.
func Reconcile(authoritative []Record, proposed []ProposedEdit, now DateSpec) []Record {
	current := make([]Record, len(authoritative))
	byKey := make(map[MatchKey]int, len(authoritative))
	for i, record := range authoritative {
		current[i] = record.Clone()
		current[i].originIndex = i
		byKey[record.Key()] = i
	}

	editByKey := make(map[MatchKey]ProposedEdit, len(proposed))
	var matchedOrder []MatchKey
	var added []ProposedEdit
	for _, edit := range proposed {
		key := edit.Key.canonical()
		if _, ok := byKey[key]; !ok {
			added = append(added, edit)
			continue
		}
		if _, seen := editByKey[key]; !seen {
			matchedOrder = append(matchedOrder, key)
		}
		editByKey[key] = edit
	}

	var working, successors []Record
	apply := func(previous Record) Record {
		edit, ok := editByKey[previous.Key()]
		if !ok {
			return previous
		}
		next := applyEdit(previous, edit, now)
		if next.IsComplete && !previous.IsComplete && next.Recurring != nil {
			successors = append(successors, successor(next, previous.CreateDate))
		}
		return next
	}

	if reordered(matchedOrder, byKey) {
		emitted := make(map[int]bool, len(matchedOrder))
		for _, key := range matchedOrder {
			idx := byKey[key]
			emitted[idx] = true
			working = append(working, apply(current[idx]))
		}
		for i, record := range current {
			if emitted[i] {
				continue
			}
			if _, visible := editByKey[record.Key()]; visible {
				// a duplicate of a key the client already placed
				working = append(working, apply(record))
				continue
			}
			working = append(working, record)
		}
	} else {
		for _, record := range current {
			working = append(working, apply(record))
		}
	}

	working = append(working, successors...)

	for _, edit := range added {
		record := edit.record()
		if record.IsComplete && record.CompleteDate == nil {
			record.CompleteDate = cloneDate(&now)
		}
		working = append(working, record)
	}

	for i := range working {
		working[i].originIndex = 0
	}
	return Sort(working)
}

// reordered reports whether keys, in client order, differ from the order of
// the same keys in the file.
func reordered(keys []MatchKey, byKey map[MatchKey]int) bool {
	fileOrder := slices.Clone(keys)
	slices.SortStableFunc(fileOrder, func(a, b MatchKey) int {
		return byKey[a] - byKey[b]
	})
	return !slices.Equal(keys, fileOrder)
}

func applyEdit(previous Record, edit ProposedEdit, now DateSpec) Record {
	next := edit.record()
	next.originIndex = previous.originIndex

	switch {
	case next.IsComplete && !previous.IsComplete:
		if next.CompleteDate == nil {
			next.CompleteDate = cloneDate(&now)
		}
	case next.IsComplete && next.CompleteDate == nil:
		next.CompleteDate = cloneDate(previous.CompleteDate)
	}
	return next
}

// successor returns the next open occurrence of a just-completed recurring
// record. originalCreate is the create date the record had before the edit.
func successor(done Record, originalCreate *DateSpec) Record {
	var original DateSpec
	if originalCreate != nil {
		original = *originalCreate
	}
	next := NextOccurrence(*done.Recurring, *done.CompleteDate, original)
	return Record{
		CreateDate:  &next,
		Description: done.Description,
		Link:        cloneLink(done.Link),
		Recurring:   cloneRecurrence(done.Recurring),
	}
}
