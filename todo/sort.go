package todo

import (
	"cmp"
	"slices"
	"strings"
)

// Sort returns records in canonical order:
//  1. incomplete linked todos by link text (case-insensitive)
//  2. complete todos by completion date
//  3. incomplete unlinked todos by create date
//
// Missing dates sort first. Ties keep their input order, so sorting is
// idempotent. The input slice is not modified.
func Sort(records []Record) []Record {
	var linked, complete, open, other []Record
	for _, record := range records {
		switch {
		case !record.IsComplete && record.HasLink():
			linked = append(linked, record)
		case record.IsComplete:
			complete = append(complete, record)
		case !record.IsComplete && !record.HasLink():
			open = append(open, record)
		default:
			other = append(other, record)
		}
	}

	slices.SortStableFunc(linked, func(a, b Record) int {
		return strings.Compare(strings.ToLower(a.Link.Text), strings.ToLower(b.Link.Text))
	})
	slices.SortStableFunc(complete, func(a, b Record) int {
		return cmp.Compare(timestamp(a.CompleteDate), timestamp(b.CompleteDate))
	})
	slices.SortStableFunc(open, func(a, b Record) int {
		return cmp.Compare(timestamp(a.CreateDate), timestamp(b.CreateDate))
	})

	sorted := make([]Record, 0, len(records))
	sorted = append(sorted, linked...)
	sorted = append(sorted, complete...)
	sorted = append(sorted, open...)
	return append(sorted, other...)
}

func timestamp(d *DateSpec) int64 {
	if d == nil {
		return 0
	}
	return d.Timestamp()
}
