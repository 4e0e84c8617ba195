package vacancies

import (
	"fmt"
	"math"
	"time"
)

// PopularSearches are the quick search terms under the search box
var PopularSearches = []string{
	"Software Engineer", "React", "Product Manager", "UX Design",
	"Data Science", "DevOps", "Marketing", "Remote",
}

const shownPopular = 6

// Popular returns the terms displayed on the page
func Popular() []string {
	n := min(shownPopular, len(PopularSearches))
	return append([]string(nil), PopularSearches[:n]...)
}

// FormatPosted renders a posting date relative to now. Each unit is rounded
// from the one below it.
func FormatPosted(posted, now time.Time) string {
	if posted.IsZero() {
		return "Date not available"
	}

	seconds := math.Round(float64(now.Sub(posted).Milliseconds()) / 1000)
	minutes := math.Round(seconds / 60)
	hours := math.Round(minutes / 60)
	days := math.Round(hours / 24)

	switch {
	case seconds < 5:
		return "Just now"
	case seconds < 60:
		return fmt.Sprintf("%d sec ago", int(seconds))
	case minutes < 60:
		return fmt.Sprintf("%d min ago", int(minutes))
	case hours < 24:
		return fmt.Sprintf("%d hr ago", int(hours))
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", int(days))
	case days < 30:
		return fmt.Sprintf("%d wk ago", int(days)/7)
	case days < 365:
		return fmt.Sprintf("%d mo ago", int(days)/30)
	default:
		return posted.Format("Jan 2, 2006")
	}
}
