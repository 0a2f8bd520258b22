// Package hasher produces content digests from normalized records.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/recordgate/recordgate/record"
)

type Option func(*Hasher)

// WithMetadataFields replaces the set of field names excluded from
// digest computation.
func WithMetadataFields(names ...string) Option {
	return func(h *Hasher) {
		h.metadata = make(map[string]struct{}, len(names))
		for _, name := range names {
			h.metadata[name] = struct{}{}
		}
	}
}

// Hasher converts a record into a canonical representation and hashes
// it. The zero set of options excludes the timestamp and unique-id
// fields, which are system metadata rather than content.
type Hasher struct {
	metadata map[string]struct{}
}

func New(opts ...Option) *Hasher {
	h := &Hasher{
		metadata: map[string]struct{}{
			record.FieldTimestamp: {},
			record.FieldID:        {},
		},
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Digest computes the record's content fingerprint:
// metadata fields are dropped, every remaining value is stringified,
// lower-cased and trimmed, and the resulting mapping is serialized
// sorted by field name before hashing with SHA-256.
//
// The function is pure: same logical content always yields the same
// digest, independent of field insertion order. A missing field and an
// empty-string field are NOT equivalent; normalization does not impute
// absent fields.
func (h *Hasher) Digest(r *record.Record) (record.Digest, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	normalized := make(map[string]string, r.Len())

	for _, f := range r.Fields() {
		if _, ok := h.metadata[f.Name]; ok {
			continue
		}

		normalized[f.Name] = strings.TrimSpace(strings.ToLower(f.Value.Text()))
	}

	// encoding/json sorts map keys, which gives the canonical
	// order-independent serialization.
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(payload)

	return record.Digest(hex.EncodeToString(sum[:])), nil
}
