package listing

import (
	"sync"
)

// FilterState owns the current ListQuery. Every effective mutation emits one
// change notification carrying a snapshot.
type FilterState struct {
	mu        sync.Mutex
	sentinels Sentinels
	query     ListQuery
	onChange  func(ListQuery)
}

// NewFilterState starts from the default query. onChange may be nil.
func NewFilterState(sentinels Sentinels, onChange func(ListQuery)) *FilterState {
	return &FilterState{
		sentinels: sentinels,
		query:     DefaultQuery(sentinels),
		onChange:  onChange,
	}
}

// Query returns a snapshot of the current query
func (f *FilterState) Query() ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query.Clone()
}

// Sentinels returns the sentinel table the state was built with
func (f *FilterState) Sentinels() Sentinels {
	return f.sentinels
}

// SetFreeText replaces the search text
func (f *FilterState) SetFreeText(text string) {
	f.mutate(func(q *ListQuery) bool {
		if q.FreeText == text {
			return false
		}
		q.FreeText = text
		return true
	})
}

// SetFilter selects value for key. An empty value resets the key to its sentinel.
// Values outside the known option set are accepted.
func (f *FilterState) SetFilter(key, value string) {
	f.mutate(func(q *ListQuery) bool {
		if value == "" {
			value = f.sentinels[key]
		}
		if cur, ok := q.Filters[key]; ok && cur == value {
			return false
		}
		q.Filters[key] = value
		return true
	})
}

// SetPage moves to a page; zero means no paging parameter
func (f *FilterState) SetPage(page int) {
	f.mutate(func(q *ListQuery) bool {
		if page < 0 {
			page = 0
		}
		if q.Page == page {
			return false
		}
		q.Page = page
		return true
	})
}

// Clear resets everything to defaults with a single notification
func (f *FilterState) Clear() {
	f.mutate(func(q *ListQuery) bool {
		def := DefaultQuery(f.sentinels)
		if q.Equal(def) {
			return false
		}
		*q = def
		return true
	})
}

func (f *FilterState) mutate(fn func(q *ListQuery) bool) {
	f.mu.Lock()
	changed := fn(&f.query)
	snapshot := f.query.Clone()
	notify := f.onChange
	f.mu.Unlock()

	if changed && notify != nil {
		notify(snapshot)
	}
}
