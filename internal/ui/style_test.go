package ui

import "testing"

func TestStyleRowWithoutColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	for _, state := range []RowState{RowNormal, RowDone, RowLinked, RowOld, RowUpcoming} {
		if got := StyleRow(state, "Call Bob"); got != "Call Bob" {
			t.Fatalf("state %d: expected plain text, got %q", state, got)
		}
	}
	if got := StyleHeader("TODO"); got != "TODO" {
		t.Fatalf("expected plain header, got %q", got)
	}
}

func TestColorEnabledHonoursEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "dumb")

	if ColorEnabled() {
		t.Fatal("expected colour disabled for dumb terminal")
	}
}
