package todo

import "time"

const (
	// CompletedGrace is how long a completed todo stays visible.
	CompletedGrace = 5 * time.Minute

	// FutureHorizon hides todos that start further ahead than this.
	FutureHorizon = 12 * time.Hour

	// StaleAfter hides open todos that started longer ago than this.
	StaleAfter = 14 * 24 * time.Hour

	// OldAfter marks open todos as old.
	OldAfter = 7 * 24 * time.Hour

	// UpcomingAfter marks open todos as upcoming (dimmed).
	UpcomingAfter = 4 * time.Hour
)

// IsVisible reports whether a record belongs in the default view at now.
// Only dates with a time of day take part in these rules.
func IsVisible(record Record, now time.Time) bool {
	if record.IsComplete {
		if timed(record.CompleteDate) {
			return now.Sub(record.CompleteDate.In(now.Location())) <= CompletedGrace
		}
		return true
	}

	if timed(record.CreateDate) {
		until := record.CreateDate.In(now.Location()).Sub(now)
		if until > FutureHorizon {
			return false
		}
		if until < -StaleAfter {
			return false
		}
	}
	return true
}

// Visible returns the records in the default view, in order. Everything else
// is hidden from the client and must survive reconciliation untouched.
func Visible(records []Record, now time.Time) []Record {
	visible := make([]Record, 0, len(records))
	for _, record := range records {
		if IsVisible(record, now) {
			visible = append(visible, record)
		}
	}
	return visible
}

// IsOld reports whether an unlinked record started more than OldAfter ago.
func IsOld(record Record, now time.Time) bool {
	if record.HasLink() || !timed(record.CreateDate) {
		return false
	}
	return now.Sub(record.CreateDate.In(now.Location())) > OldAfter
}

// IsUpcoming reports whether an open record starts more than UpcomingAfter
// from now.
func IsUpcoming(record Record, now time.Time) bool {
	if record.IsComplete || !timed(record.CreateDate) {
		return false
	}
	return record.CreateDate.In(now.Location()).Sub(now) > UpcomingAfter
}

func timed(d *DateSpec) bool {
	return d != nil && d.HasTime()
}
