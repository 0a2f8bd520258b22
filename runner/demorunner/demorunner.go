// Package demorunner feeds a small sample batch through the admission
// service and reports every decision.
package demorunner

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/recordgate/recordgate/admission"
	"github.com/recordgate/recordgate/record"
	"github.com/recordgate/recordgate/runner"
)

type demoRunner struct {
	cfg    *runner.Config
	logger *zap.Logger
	svc    *admission.Service
}

func New(cfg *runner.Config) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeDemo {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	logger, err := runner.NewLogger(cfg.Debug)
	if err != nil {
		return nil, err
	}

	ans := demoRunner{
		cfg:    cfg,
		logger: logger,
	}

	return &ans, nil
}

func (r *demoRunner) Run(ctx context.Context) error {
	st, err := runner.NewStore(r.cfg)
	if err != nil {
		return err
	}

	opts := []admission.Option{
		admission.WithLogger(r.logger),
	}

	if r.cfg.UseDigestIndex {
		opts = append(opts, admission.WithDigestIndex())
	}

	svc, err := admission.New(ctx, st, opts...)
	if err != nil {
		return err
	}

	r.svc = svc

	for i, rec := range sampleRecords() {
		result, err := svc.Add(ctx, rec)
		if err != nil {
			return err
		}

		fields := []zap.Field{
			zap.Int("entry", i+1),
			zap.String("name", fieldText(rec, "name")),
			zap.String("status", result.Status),
		}

		if result.Admitted() {
			fields = append(fields, zap.String("id", result.ID))
		} else {
			fields = append(fields, zap.String("conflict_id", fieldText(result.Conflict, record.FieldID)))
		}

		r.logger.Info("processed entry", fields...)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("final results",
		zap.Uint64("processed", stats.Processed),
		zap.Uint64("duplicates", stats.Duplicates),
		zap.Uint64("unique", stats.Unique),
		zap.Uint64("stored", stats.Stored),
	)

	records, err := svc.Records(ctx)
	if err != nil {
		return err
	}

	for i, rec := range records {
		r.logger.Info("stored record",
			zap.Int("position", i+1),
			zap.String("name", fieldText(rec, "name")),
			zap.String("email", fieldText(rec, "email")),
			zap.String("city", fieldText(rec, "city")),
			zap.String("id", fieldText(rec, record.FieldID)),
		)
	}

	return nil
}

func (r *demoRunner) Close(ctx context.Context) error {
	var err error

	if r.svc != nil {
		err = multierr.Append(err, r.svc.Close(ctx))
	}

	err = multierr.Append(err, r.logger.Sync())

	return err
}

func sampleRecords() []*record.Record {
	build := func(name, email string, age float64, city string) *record.Record {
		return record.New().
			Set("name", record.String(name)).
			Set("email", record.String(email)).
			Set("age", record.Number(age)).
			Set("city", record.String(city))
	}

	return []*record.Record{
		build("John Doe", "john@example.com", 30, "New York"),
		build("John Doe", "john@example.com", 30, "New York"), // exact duplicate
		build("john doe", "JOHN@example.com", 30, "New York"), // different case
		build("Jane Smith", "jane@example.com", 25, "London"),
		build("John Doe", "john@example.com", 30, "Boston"),   // different city
		build("Jane Smith", "jane@example.com", 25, "London"), // duplicate of Jane
	}
}

func fieldText(rec *record.Record, name string) string {
	if rec == nil {
		return ""
	}

	v, ok := rec.Get(name)
	if !ok {
		return ""
	}

	return v.Text()
}
