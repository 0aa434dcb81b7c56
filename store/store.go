package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/tsawler/zonal/core"
)

// ErrNotExist is the sentinel a Source returns (possibly wrapped) when it
// has no entry for an id.
var ErrNotExist = errors.New("object does not exist")

// NotFoundError reports an object id the backing source has no entry for.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("content object %q not found", e.ID)
}

// Unwrap makes the error match ErrNotExist via errors.Is.
func (e *NotFoundError) Unwrap() error { return ErrNotExist }

// MalformedError reports a resolved value that is not a usable content
// object: not a mapping, or missing its mandatory type declaration.
type MalformedError struct {
	ID     string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("content object %q is malformed: %s", e.ID, e.Reason)
}

// Object is one resolved content object: a typed, position-agnostic bag
// of attributes. Attributes holds everything the source supplied except
// the type declaration itself.
type Object struct {
	ID         string
	Type       string
	Attributes core.Dict
}

// Stats holds the observational counters of one store instance.
type Stats struct {
	Hits    int
	Misses  int
	Timings map[string]time.Duration
}

// TotalLoadTime sums the recorded per-object load durations.
func (s Stats) TotalLoadTime() time.Duration {
	var total time.Duration
	for _, d := range s.Timings {
		total += d
	}
	return total
}

// Store resolves and memoizes content objects from a Source. The cache
// and counters are local to the instance; construct a fresh store per
// render request.
type Store struct {
	source Source
	cache  map[string]*Object
	stats  Stats
}

// New creates a store over the given source.
func New(source Source) *Store {
	return &Store{
		source: source,
		cache:  make(map[string]*Object),
		stats:  Stats{Timings: make(map[string]time.Duration)},
	}
}

// Load resolves a content object by id, memoizing the result. Repeated
// calls return the cached object without consulting the source again.
//
// A source miss is returned as *NotFoundError; a resolved value without a
// mapping shape or a non-empty type declaration is *MalformedError.
func (s *Store) Load(id string) (*Object, error) {
	if obj, ok := s.cache[id]; ok {
		s.stats.Hits++
		return obj, nil
	}
	s.stats.Misses++

	start := time.Now()
	raw, err := s.source.Resolve(id)
	s.stats.Timings[id] = time.Since(start)

	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("resolving object %q: %w", id, err)
	}
	if raw == nil {
		return nil, &MalformedError{ID: id, Reason: "value is not a mapping"}
	}

	typeName, ok := raw["type"].(string)
	if !ok || typeName == "" {
		return nil, &MalformedError{ID: id, Reason: "no type declared"}
	}

	attrs := make(map[string]any, len(raw))
	for k, v := range raw {
		if k == "type" {
			continue
		}
		attrs[k] = v
	}

	obj := &Object{
		ID:         id,
		Type:       typeName,
		Attributes: core.FromMap(attrs),
	}
	s.cache[id] = obj
	return obj, nil
}

// LoadMultiple resolves several objects at once, keyed by id. It stops at
// the first failure.
func (s *Store) LoadMultiple(ids []string) (map[string]*Object, error) {
	objects := make(map[string]*Object, len(ids))
	for _, id := range ids {
		obj, err := s.Load(id)
		if err != nil {
			return nil, err
		}
		objects[id] = obj
	}
	return objects, nil
}

// Exists reports whether the source has an entry for the id. It never
// returns an error; only ErrNotExist reads as absence, so a malformed
// object still exists.
func (s *Store) Exists(id string) bool {
	if _, ok := s.cache[id]; ok {
		return true
	}
	_, err := s.source.Resolve(id)
	return !errors.Is(err, ErrNotExist)
}

// ListObjects returns the ids of every object the source knows about.
func (s *Store) ListObjects() ([]string, error) {
	ids, err := s.source.List()
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}
	return ids, nil
}

// ClearCache empties the memoization cache. Counters and timings are kept;
// they describe the instance, not the cache.
func (s *Store) ClearCache() {
	s.cache = make(map[string]*Object)
}

// Stats returns a snapshot of the store's counters and load timings.
func (s *Store) Stats() Stats {
	snapshot := Stats{
		Hits:    s.stats.Hits,
		Misses:  s.stats.Misses,
		Timings: make(map[string]time.Duration, len(s.stats.Timings)),
	}
	for id, d := range s.stats.Timings {
		snapshot.Timings[id] = d
	}
	return snapshot
}
