package vacancies

import (
	"testing"
	"time"
)

func TestFormatPosted(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{2 * time.Second, "Just now"},
		{30 * time.Second, "30 sec ago"},
		{5 * time.Minute, "5 min ago"},
		{3 * time.Hour, "3 hr ago"},
		{26 * time.Hour, "Yesterday"},
		{4 * 24 * time.Hour, "4 days ago"},
		{15 * 24 * time.Hour, "2 wk ago"},
		{95 * 24 * time.Hour, "3 mo ago"},
		{400 * 24 * time.Hour, "Feb 14, 2024"},
	}

	for _, tt := range tests {
		if got := FormatPosted(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("FormatPosted(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}

	if got := FormatPosted(time.Time{}, now); got != "Date not available" {
		t.Errorf("zero time = %q", got)
	}
}

func TestPopular(t *testing.T) {
	t.Parallel()

	got := Popular()
	if len(got) != 6 || got[0] != "Software Engineer" {
		t.Errorf("Popular() = %v", got)
	}
	got[0] = "changed"
	if PopularSearches[0] != "Software Engineer" {
		t.Error("Popular should return a copy")
	}
}
