package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestJobAcceptsMongoID(t *testing.T) {
	t.Parallel()

	var j Job
	if err := json.Unmarshal([]byte(`{"_id":"abc","title":"Go Engineer","postedDate":"2025-05-01T10:00:00Z"}`), &j); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if j.ID != "abc" {
		t.Errorf("ID = %q, want abc", j.ID)
	}
	want := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	if !j.PostedDate.Equal(want) {
		t.Errorf("PostedDate = %v, want %v", j.PostedDate, want)
	}
}

func TestJobPrefersID(t *testing.T) {
	t.Parallel()

	var j Job
	if err := json.Unmarshal([]byte(`{"_id":"mongo","id":"plain"}`), &j); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if j.ID != "plain" {
		t.Errorf("ID = %q, want plain", j.ID)
	}
}

func TestTimestampToleratesBadValues(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`""`, `null`, `"yesterday"`, `12`} {
		var ts Timestamp
		if err := json.Unmarshal([]byte(in), &ts); err != nil {
			t.Errorf("Unmarshal(%s) error: %v", in, err)
		}
		if !ts.IsZero() {
			t.Errorf("Unmarshal(%s) = %v, want zero", in, ts.Time)
		}
	}
}

func TestBlogPostNestedCategory(t *testing.T) {
	t.Parallel()

	var p BlogPost
	body := `{"_id":"p1","slug":"hiring-trends","category":{"_id":"c1","name":"Hiring","slug":"hiring"},"views":12}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID != "p1" || p.Category.ID != "c1" || p.Category.Slug != "hiring" {
		t.Errorf("got %+v", p)
	}
	if p.Views == nil || *p.Views != 12 {
		t.Errorf("Views = %v, want 12", p.Views)
	}
}
