package listing

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/honeycarbs/silver-talent/pkg/logging"
)

// OptionSet maps a filter key to the values the backend offers for it
type OptionSet map[string][]string

// OptionLoader fetches the option set once
type OptionLoader func(ctx context.Context) (OptionSet, error)

// SelectSpec names one filter select and its sentinel
type SelectSpec struct {
	Key      string
	Sentinel string
}

// Select is one populated filter dropdown
type Select struct {
	Key      string
	Options  []string
	Disabled bool
}

// OptionSource loads filter options once per mount. It has its own status and
// never blocks or fails the list it feeds.
type OptionSource struct {
	load   OptionLoader
	specs  []SelectSpec
	logger *logging.Logger

	once sync.Once
	done chan struct{}

	mu      sync.Mutex
	status  Status
	options OptionSet
	message string
}

// NewOptionSource builds a source for the given selects
func NewOptionSource(load OptionLoader, specs []SelectSpec, logger *logging.Logger) (*OptionSource, error) {
	if load == nil {
		return nil, fmt.Errorf("listing: option loader is required")
	}
	return &OptionSource{
		load:   load,
		specs:  slices.Clone(specs),
		logger: logging.OrNop(logger).Component("options"),
		done:   make(chan struct{}),
		status: StatusIdle,
	}, nil
}

// Sentinels returns the sentinel table of the configured selects
func (s *OptionSource) Sentinels() Sentinels {
	out := make(Sentinels, len(s.specs))
	for _, spec := range s.specs {
		out[spec.Key] = spec.Sentinel
	}
	return out
}

// Load fetches the options. Only the first call does any work; later calls
// wait for it and return its error.
func (s *OptionSource) Load(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		s.status = StatusLoading
		s.mu.Unlock()

		opts, err := s.load(ctx)

		s.mu.Lock()
		if err != nil {
			s.status = StatusError
			s.message = MessageOf(err, "")
			s.logger.Warn("filter options unavailable", "err", err)
		} else {
			s.status = StatusSuccess
			s.options = opts
		}
		s.mu.Unlock()
		close(s.done)
	})

	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusError {
		return fmt.Errorf("listing: load options: %s", s.message)
	}
	return nil
}

// Status returns the source's own fetch status
func (s *OptionSource) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Message returns the load failure message, if any
func (s *OptionSource) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Selects returns one select per spec with the sentinel first. Until the load
// succeeds each select holds only its sentinel and is disabled.
func (s *OptionSource) Selects() []Select {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Select, 0, len(s.specs))
	for _, spec := range s.specs {
		sel := Select{Key: spec.Key, Options: []string{spec.Sentinel}}
		if s.status != StatusSuccess {
			sel.Disabled = true
			out = append(out, sel)
			continue
		}
		for _, v := range s.options[spec.Key] {
			if v == "" || v == spec.Sentinel {
				continue
			}
			sel.Options = append(sel.Options, v)
		}
		out = append(out, sel)
	}
	return out
}

// Select returns the select for key
func (s *OptionSource) Select(key string) (Select, bool) {
	for _, sel := range s.Selects() {
		if sel.Key == key {
			return sel, true
		}
	}
	return Select{}, false
}
