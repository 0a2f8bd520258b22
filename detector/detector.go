// Package detector decides whether a candidate record duplicates a
// previously admitted one, by digest comparison.
package detector

import (
	"context"
	"fmt"
	"sync"

	"github.com/recordgate/recordgate/hasher"
	"github.com/recordgate/recordgate/record"
)

// Stats is a snapshot of the detector's counters. Counters are scoped
// to one Detector instance and reset only by constructing a new one.
type Stats struct {
	Processed  uint64
	Duplicates uint64
	Unique     uint64
}

type Detector struct {
	hasher *hasher.Hasher

	mu    sync.Mutex
	stats Stats
}

func New(h *hasher.Hasher) *Detector {
	if h == nil {
		h = hasher.New()
	}

	return &Detector{hasher: h}
}

// Check scans existing in order and returns the first record whose
// digest equals the candidate's. The candidate's digest is computed
// once; each existing record's digest is recomputed per call, which is
// O(n) and acceptable for small stores (see Index for the indexed
// variant).
//
// A malformed candidate fails with record.ErrInvalid and leaves the
// counters untouched. A successful call increments processed and
// exactly one of duplicates or unique.
func (d *Detector) Check(_ context.Context, candidate *record.Record, existing []*record.Record) (bool, *record.Record, error) {
	want, err := d.hasher.Digest(candidate)
	if err != nil {
		return false, nil, err
	}

	for _, rec := range existing {
		got, err := d.hasher.Digest(rec)
		if err != nil {
			return false, nil, fmt.Errorf("stored record: %w", err)
		}

		if got == want {
			d.count(true)

			return true, rec, nil
		}
	}

	d.count(false)

	return false, nil, nil
}

// CheckIndex is the O(1) variant of Check, looking the candidate's
// digest up in a pre-built index instead of scanning. Counter semantics
// are identical.
func (d *Detector) CheckIndex(_ context.Context, candidate *record.Record, idx *Index) (bool, *record.Record, error) {
	want, err := d.hasher.Digest(candidate)
	if err != nil {
		return false, nil, err
	}

	if conflict, ok := idx.Get(want); ok {
		d.count(true)

		return true, conflict, nil
	}

	d.count(false)

	return false, nil, nil
}

func (d *Detector) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.stats
}

func (d *Detector) count(duplicate bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stats.Processed++

	if duplicate {
		d.stats.Duplicates++
	} else {
		d.stats.Unique++
	}
}
