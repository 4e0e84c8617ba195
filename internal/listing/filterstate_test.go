package listing

import (
	"testing"
)

func TestFilterState_notifiesOncePerMutation(t *testing.T) {
	t.Parallel()

	var got []ListQuery
	fs := NewFilterState(jobSentinels, func(q ListQuery) { got = append(got, q) })

	fs.SetFreeText("R")
	fs.SetFreeText("Re")
	fs.SetFilter("category", "Technology")
	fs.SetFilter("category", "Technology") // no change

	if len(got) != 3 {
		t.Fatalf("notifications = %d, want 3", len(got))
	}
	last := got[len(got)-1]
	if last.FreeText != "Re" || last.Filters["category"] != "Technology" {
		t.Errorf("last snapshot = %+v", last)
	}

	// snapshots are independent of later edits
	fs.SetFilter("category", "Finance")
	if last.Filters["category"] != "Technology" {
		t.Error("snapshot shares state with the holder")
	}
}

func TestFilterState_clearEmitsOne(t *testing.T) {
	t.Parallel()

	calls := 0
	var last ListQuery
	fs := NewFilterState(jobSentinels, func(q ListQuery) {
		calls++
		last = q
	})

	fs.SetFreeText("react")
	fs.SetFilter("category", "Technology")
	fs.SetFilter("location", "Pune")
	calls = 0

	fs.Clear()
	if calls != 1 {
		t.Fatalf("Clear notifications = %d, want 1", calls)
	}
	if !last.IsDefault(jobSentinels) || last.Filters["location"] != "All Locations" {
		t.Errorf("cleared query = %+v", last)
	}

	fs.Clear()
	if calls != 1 {
		t.Errorf("clearing a default query notified again")
	}
}

func TestFilterState_emptyValueResetsToSentinel(t *testing.T) {
	t.Parallel()

	fs := NewFilterState(jobSentinels, nil)
	fs.SetFilter("type", "Contract")
	fs.SetFilter("type", "")

	if got := fs.Query().Filters["type"]; got != "All Types" {
		t.Errorf("type = %q, want All Types", got)
	}
}
