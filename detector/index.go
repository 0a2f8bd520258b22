package detector

import (
	"sync"

	"github.com/recordgate/recordgate/record"
)

// Index maps digests to the earliest record admitted with that digest.
// Put is first-write-wins, so lookups preserve the same
// earliest-by-store-order tie-break as the linear scan.
type Index struct {
	mux  *sync.RWMutex
	seen map[record.Digest]*record.Record
}

func NewIndex() *Index {
	return &Index{
		mux:  &sync.RWMutex{},
		seen: make(map[record.Digest]*record.Record),
	}
}

// Put records rec under d unless the digest is already present. It
// reports whether the entry was inserted.
func (x *Index) Put(d record.Digest, rec *record.Record) bool {
	x.mux.RLock()
	if _, ok := x.seen[d]; ok {
		x.mux.RUnlock()

		return false
	}

	x.mux.RUnlock()

	x.mux.Lock()
	defer x.mux.Unlock()

	if _, ok := x.seen[d]; ok {
		return false
	}

	x.seen[d] = rec

	return true
}

func (x *Index) Get(d record.Digest) (*record.Record, bool) {
	x.mux.RLock()
	defer x.mux.RUnlock()

	rec, ok := x.seen[d]

	return rec, ok
}

func (x *Index) Len() int {
	x.mux.RLock()
	defer x.mux.RUnlock()

	return len(x.seen)
}
