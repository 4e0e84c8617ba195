// Package listing implements the remote-filtered list primitive shared by the
// vacancies page, the blog page and the admin dropdown sources.
package listing

import (
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Sentinels maps a filter key to the option meaning "no constraint"
type Sentinels map[string]string

// Keys returns the filter keys in a stable order
func (s Sentinels) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// ListQuery is the filter snapshot a request is built from
type ListQuery struct {
	FreeText string
	Filters  map[string]string
	Page     int
}

// DefaultQuery is empty text with every filter at its sentinel
func DefaultQuery(sentinels Sentinels) ListQuery {
	q := ListQuery{Filters: make(map[string]string, len(sentinels))}
	for k, v := range sentinels {
		q.Filters[k] = v
	}
	return q
}

// Clone returns a copy that shares no map with q
func (q ListQuery) Clone() ListQuery {
	out := q
	out.Filters = maps.Clone(q.Filters)
	if out.Filters == nil {
		out.Filters = map[string]string{}
	}
	return out
}

// Equal compares two queries by value
func (q ListQuery) Equal(o ListQuery) bool {
	if q.FreeText != o.FreeText || q.Page != o.Page {
		return false
	}
	if len(q.Filters) != len(o.Filters) {
		return false
	}
	for k, v := range q.Filters {
		if ov, ok := o.Filters[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Filter returns the value selected for key and whether it constrains the list
func (q ListQuery) Filter(key string, sentinels Sentinels) (string, bool) {
	v := strings.TrimSpace(q.Filters[key])
	if v == "" || v == sentinels[key] {
		return "", false
	}
	return v, true
}

// IsDefault reports whether the query carries no constraint at all
func (q ListQuery) IsDefault(sentinels Sentinels) bool {
	if strings.TrimSpace(q.FreeText) != "" || q.Page > 0 {
		return false
	}
	for k := range q.Filters {
		if _, ok := q.Filter(k, sentinels); ok {
			return false
		}
	}
	return true
}

// Params builds the outgoing query string. Empty text, empty filters and
// sentinel filters are omitted.
func (q ListQuery) Params(textKey string, sentinels Sentinels) url.Values {
	values := url.Values{}
	if text := strings.TrimSpace(q.FreeText); text != "" {
		values.Set(textKey, text)
	}
	for k := range q.Filters {
		if v, ok := q.Filter(k, sentinels); ok {
			values.Set(k, v)
		}
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	return values
}
