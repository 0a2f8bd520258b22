package record

// Digest is the fixed-length fingerprint of a record's normalized
// content fields. Two records with equal digests are duplicates.
type Digest string

func (d Digest) String() string {
	return string(d)
}
