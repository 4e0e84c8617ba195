// Package visibility decides when tracked elements enter or leave a viewport.
// Callers render from the reported state instead of mutating their elements.
package visibility

import (
	"slices"
	"strings"
	"sync"
)

// DefaultThreshold is the visible fraction that counts as revealed
const DefaultThreshold = 0.1

// Rect is an axis aligned box in viewport coordinates
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

func (r Rect) intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Ratio is the fraction of r inside viewport
func Ratio(r, viewport Rect) float64 {
	a := r.area()
	if a == 0 {
		return 0
	}
	return r.intersect(viewport).area() / a
}

// Transition reports one element whose visibility changed
type Transition struct {
	ID      string
	Visible bool
	Ratio   float64
}

// Option configures a Tracker
type Option func(*Tracker)

// WithThreshold sets the visible fraction needed to count as visible
func WithThreshold(t float64) Option {
	return func(tr *Tracker) {
		if t >= 0 && t <= 1 {
			tr.threshold = t
		}
	}
}

// Once latches an element as visible after its first reveal
func Once() Option {
	return func(tr *Tracker) {
		tr.once = true
	}
}

type entry struct {
	rect    Rect
	visible bool
}

// Tracker holds the last known visibility of every observed element
type Tracker struct {
	threshold float64
	once      bool

	mu      sync.Mutex
	entries map[string]*entry
}

// NewTracker builds a tracker with DefaultThreshold unless overridden
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{threshold: DefaultThreshold, entries: make(map[string]*entry)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Observe starts tracking id, or moves it when already tracked
func (t *Tracker) Observe(id string, r Rect) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[id]; ok {
		e.rect = r
		return
	}
	t.entries[id] = &entry{rect: r}
}

// Unobserve stops tracking id
func (t *Tracker) Unobserve(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
}

// Visible reports the last computed visibility of id
func (t *Tracker) Visible(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	return ok && e.visible
}

// Update recomputes visibility against viewport and returns the elements that
// flipped, ordered by id
func (t *Tracker) Update(viewport Rect) []Transition {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []Transition
	for id, e := range t.entries {
		if t.once && e.visible {
			continue
		}
		ratio := Ratio(e.rect, viewport)
		visible := ratio > 0 && ratio >= t.threshold
		if visible == e.visible {
			continue
		}
		e.visible = visible
		out = append(out, Transition{ID: id, Visible: visible, Ratio: ratio})
	}

	slices.SortFunc(out, func(a, b Transition) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}
