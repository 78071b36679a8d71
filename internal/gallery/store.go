package gallery

import (
	"errors"
	"slices"
	"strings"
)

// ErrAlreadyInitialized is returned when Initialize is called twice.
var ErrAlreadyInitialized = errors.New("store already initialized")

// Store holds the record collection and the active filter for one session.
// It is not safe for concurrent use.
type Store struct {
	records     []Record
	active      Filter
	names       []string
	initialized bool
}

// StoreOptions configures a Store.
type StoreOptions struct {
	names   []string
	initial Filter
}

// StoreOption applies a configuration to StoreOptions.
type StoreOption func(*StoreOptions)

// WithFeaturedNames replaces the featured allow-list. Names are compared
// case-insensitively.
func WithFeaturedNames(names ...string) StoreOption {
	return func(o *StoreOptions) {
		o.names = o.names[:0]
		for _, n := range names {
			if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
				o.names = append(o.names, n)
			}
		}
	}
}

// WithInitialFilter sets the filter active before any selection.
func WithInitialFilter(f Filter) StoreOption {
	return func(o *StoreOptions) { o.initial = f }
}

// NewStore returns an empty Store with the featured filter active.
func NewStore(opts ...StoreOption) *Store {
	o := StoreOptions{names: slices.Clone(FeaturedNames), initial: FilterFeatured}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{active: o.initial, names: o.names}
}

// Initialize sets the backing collection. It may be called once.
func (s *Store) Initialize(records []Record) error {
	if s.initialized {
		return ErrAlreadyInitialized
	}
	s.records = slices.Clone(records)
	s.initialized = true
	return nil
}

// SetActiveFilter changes the active filter and reports whether it changed.
func (s *Store) SetActiveFilter(f Filter) bool {
	if f == s.active {
		return false
	}
	s.active = f
	return true
}

func (s *Store) ActiveFilter() Filter { return s.active }

// Records returns a copy of the full collection.
func (s *Store) Records() []Record { return slices.Clone(s.records) }

func (s *Store) Len() int { return len(s.records) }

// ComputeView returns the records selected by f without fallback.
func (s *Store) ComputeView(f Filter) []Record {
	return computeView(s.records, f, s.names)
}

// Resolve returns the records to render for f, falling back from featured
// to recent at most once.
func (s *Store) Resolve(f Filter) ([]Record, Filter) {
	return resolve(s.records, f, s.names)
}
