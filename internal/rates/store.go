package rates

import (
	"sort"
	"sync/atomic"
	"time"
)

// Snapshot is one immutable build of the rate data. Nothing mutates a
// snapshot after Build returns it; concurrent readers need no locking.
type Snapshot struct {
	records map[string]*RateRecord
	byName  map[string]*RateRecord
	builtAt time.Time
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		records: make(map[string]*RateRecord),
		byName:  make(map[string]*RateRecord),
		builtAt: time.Now().UTC(),
	}
}

func (s *Snapshot) add(rec *RateRecord) {
	s.records[rec.Key] = rec

	// Bare display names can collide across countries (London ON vs
	// London UK). Domestic records win the bare name; the loser stays
	// reachable through its country-prefixed key.
	name := NormalizeKey(rec.DisplayName)
	if existing, ok := s.byName[name]; !ok || existing.Region != RegionCanada {
		s.byName[name] = rec
	}
}

// Len returns the number of records in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// BuiltAt returns when this snapshot was assembled.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}

// lookup tries the normalized identifier as an exact key, then as a
// key without the country prefix, then as a case-insensitive display
// name.
func (s *Snapshot) lookup(id string) (*RateRecord, bool) {
	normalized := NormalizeIdentifier(id)
	if normalized == "" {
		return nil, false
	}
	if rec, ok := s.records[normalized]; ok {
		return rec, true
	}
	// Store keys are country-prefixed ("canada calgary"); bare city
	// names resolve through the display-name index.
	if rec, ok := s.byName[normalized]; ok {
		return rec, true
	}
	return nil, false
}

// ByRegion returns the complete records for a region, sorted by display
// name. Incomplete records are excluded from region aggregates.
func (s *Snapshot) ByRegion(region Region) []*RateRecord {
	var out []*RateRecord
	for _, rec := range s.records {
		if rec.Region == region && !rec.Incomplete {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayName < out[j].DisplayName
	})
	return out
}

// Store holds the current snapshot and swaps it wholesale when ingestion
// rebuilds, so a request never observes a half-written record.
type Store struct {
	snap atomic.Pointer[Snapshot]
}

// NewStore creates a store serving the given snapshot.
func NewStore(snap *Snapshot) *Store {
	s := &Store{}
	s.snap.Store(snap)
	return s
}

// Replace atomically swaps in a freshly built snapshot.
func (s *Store) Replace(snap *Snapshot) {
	s.snap.Store(snap)
}

// Current returns the snapshot being served.
func (s *Store) Current() *Snapshot {
	return s.snap.Load()
}

// Resolution is the outcome of a rate lookup. Record is never nil when
// the caller supplied a default.
type Resolution struct {
	Record      *RateRecord
	UsedDefault bool
}

// Resolve finds the best rate record for a free-form city identifier.
// An unknown city is a normal outcome, not an error: the caller-supplied
// default record is returned with UsedDefault set so the fallback can be
// disclosed downstream.
func (s *Store) Resolve(id string, def *RateRecord) Resolution {
	if rec, ok := s.Current().lookup(id); ok {
		return Resolution{Record: rec}
	}
	return Resolution{Record: def, UsedDefault: true}
}
