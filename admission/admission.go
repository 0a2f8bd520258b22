// Package admission gates records into a store: unique content is
// admitted and assigned an identifier, duplicate content is rejected
// with the conflicting record as evidence.
package admission

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/recordgate/recordgate/detector"
	"github.com/recordgate/recordgate/hasher"
	"github.com/recordgate/recordgate/record"
)

const (
	StatusAdmitted = "admitted"
	StatusRejected = "rejected"
)

// Store is the injected sequence of previously admitted records. The
// service only appends and iterates; deletion and updates are outside
// its contract.
type Store interface {
	Append(context.Context, *record.Record) error
	All(context.Context) ([]*record.Record, error)
	Len(context.Context) (int, error)
}

// Result is the outcome of one admission attempt.
type Result struct {
	Status    string
	ID        string
	Conflict  *record.Record
	CheckedAt time.Time
}

func (r Result) Admitted() bool {
	return r.Status == StatusAdmitted
}

// Stats extends the detector counters with the store total.
type Stats struct {
	detector.Stats
	Stored uint64
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func WithHasher(h *hasher.Hasher) Option {
	return func(s *Service) {
		s.hasher = h
	}
}

// WithDigestIndex switches duplicate lookup from the linear scan to a
// digest index warmed from the store at construction. First-match
// semantics are unchanged.
func WithDigestIndex() Option {
	return func(s *Service) {
		s.index = detector.NewIndex()
	}
}

// Service is the single decision point for a store. Check-then-append
// is serialized by an internal mutex, so two concurrent candidates with
// identical content cannot both be admitted.
type Service struct {
	store  Store
	hasher *hasher.Hasher
	det    *detector.Detector
	index  *detector.Index
	logger *zap.Logger

	mu *sync.Mutex
}

func New(ctx context.Context, store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	svc := &Service{
		store:  store,
		logger: zap.NewNop(),
		mu:     &sync.Mutex{},
	}

	for _, opt := range opts {
		opt(svc)
	}

	if svc.hasher == nil {
		svc.hasher = hasher.New()
	}

	svc.det = detector.New(svc.hasher)

	if svc.index != nil {
		if err := svc.warmIndex(ctx); err != nil {
			return nil, err
		}
	}

	return svc, nil
}

// Add runs the candidate through the duplicate check and, when unique,
// stamps an identifier and appends it to the store. The timestamp field
// is stamped before hashing; both metadata fields are excluded from the
// digest, so resubmitting admitted content is still rejected.
func (s *Service) Add(ctx context.Context, rec *record.Record) (Result, error) {
	if err := rec.Validate(); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := rec.Clone()
	candidate.Set(record.FieldTimestamp, record.String(time.Now().UTC().Format(time.RFC3339Nano)))

	duplicate, conflict, err := s.check(ctx, candidate)
	if err != nil {
		return Result{}, err
	}

	now := time.Now().UTC()

	if duplicate {
		s.logger.Info("record rejected",
			zap.String("status", StatusRejected),
			zap.String("conflict_id", recordID(conflict)),
		)

		return Result{
			Status:    StatusRejected,
			Conflict:  conflict,
			CheckedAt: now,
		}, nil
	}

	id := uuid.New().String()
	candidate.Set(record.FieldID, record.String(id))

	if err := s.store.Append(ctx, candidate); err != nil {
		return Result{}, err
	}

	if s.index != nil {
		d, err := s.hasher.Digest(candidate)
		if err != nil {
			return Result{}, err
		}

		s.index.Put(d, candidate.Clone())
	}

	s.logger.Info("record admitted",
		zap.String("status", StatusAdmitted),
		zap.String("id", id),
	)

	return Result{
		Status:    StatusAdmitted,
		ID:        id,
		CheckedAt: now,
	}, nil
}

// Stats returns the detector counters plus the number of stored records.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	n, err := s.store.Len(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		Stats:  s.det.Stats(),
		Stored: uint64(n),
	}, nil
}

// Records returns a copy of the stored sequence.
func (s *Service) Records(ctx context.Context) ([]*record.Record, error) {
	return s.store.All(ctx)
}

func (s *Service) Close(_ context.Context) error {
	var err error

	if closer, ok := s.store.(io.Closer); ok {
		err = multierr.Append(err, closer.Close())
	}

	return err
}

func (s *Service) check(ctx context.Context, candidate *record.Record) (bool, *record.Record, error) {
	if s.index != nil {
		return s.det.CheckIndex(ctx, candidate, s.index)
	}

	existing, err := s.store.All(ctx)
	if err != nil {
		return false, nil, err
	}

	return s.det.Check(ctx, candidate, existing)
}

func (s *Service) warmIndex(ctx context.Context) error {
	existing, err := s.store.All(ctx)
	if err != nil {
		return err
	}

	for _, rec := range existing {
		d, err := s.hasher.Digest(rec)
		if err != nil {
			return err
		}

		s.index.Put(d, rec)
	}

	return nil
}

func recordID(rec *record.Record) string {
	if rec == nil {
		return ""
	}

	v, ok := rec.Get(record.FieldID)
	if !ok {
		return ""
	}

	return v.Text()
}
