// Package converter runs one conversion end to end: resolve both units in
// the catalog, convert, format the result and formula, then append the
// conversion to the history log.
package converter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/runnerr0/unitconv/internal/history"
	"github.com/runnerr0/unitconv/internal/units"
)

// ErrRecordNotFound is returned by Reuse for an id not in the history log.
var ErrRecordNotFound = errors.New("history record not found")

// Request names a conversion by unit names, as a host collects it.
type Request struct {
	Value    float64
	FromUnit string
	ToUnit   string
	Category units.Category
}

// Swapped returns the request with source and target exchanged.
func (r Request) Swapped() Request {
	r.FromUnit, r.ToUnit = r.ToUnit, r.FromUnit
	return r
}

// Result is a completed conversion. Display and Formula are empty when the
// input is not a number. Record is nil when nothing was written to history.
type Result struct {
	Category units.Category
	From     units.Unit
	To       units.Unit
	Input    float64
	Value    float64
	Display  string
	Formula  string
	Record   *history.Record
}

// Service converts values and keeps the history log current.
type Service struct {
	log    *history.Log
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used to stamp history records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(log *history.Log, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		log:    log,
		logger: logger.Named("converter"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Convert performs req and records it. Results that are not finite are
// returned but not recorded.
func (s *Service) Convert(ctx context.Context, req Request) (Result, error) {
	from, err := units.Lookup(req.Category, req.FromUnit)
	if err != nil {
		return Result{}, fmt.Errorf("resolve source unit: %w", err)
	}
	to, err := units.Lookup(req.Category, req.ToUnit)
	if err != nil {
		return Result{}, fmt.Errorf("resolve target unit: %w", err)
	}

	res := Result{Category: req.Category, From: from, To: to, Input: req.Value}
	if math.IsNaN(req.Value) {
		res.Value = math.NaN()
		return res, nil
	}

	value, err := units.Convert(req.Value, from, to, req.Category)
	if err != nil {
		return Result{}, fmt.Errorf("convert: %w", err)
	}
	res.Value = value
	res.Display = units.FormatResult(value)
	res.Formula = units.Formula(req.Value, from, to, value, req.Category)

	if math.IsInf(req.Value, 0) || math.IsNaN(value) || math.IsInf(value, 0) {
		s.logger.Debug("skipping history for non-finite conversion",
			zap.String("category", string(req.Category)),
			zap.Float64("value", req.Value))
		return res, nil
	}

	rec, err := history.NewRecord(req.Category, req.Value, from, value, to, s.now())
	if err != nil {
		return Result{}, err
	}
	if err := s.log.Record(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("record history: %w", err)
	}
	res.Record = &rec

	s.logger.Debug("converted",
		zap.String("category", string(req.Category)),
		zap.String("from", from.Name),
		zap.String("to", to.Name),
		zap.String("id", rec.ID))
	return res, nil
}

// Reuse re-runs the stored conversion with the given id. The rerun is
// recorded as a new history entry.
func (s *Service) Reuse(ctx context.Context, id string) (Result, error) {
	rec, ok := s.log.Find(ctx, id)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return s.Convert(ctx, Request{
		Value:    rec.FromValue,
		FromUnit: rec.FromUnit,
		ToUnit:   rec.ToUnit,
		Category: units.Category(rec.Category),
	})
}

// History returns the recorded conversions, most recent first.
func (s *Service) History(ctx context.Context) []history.Record {
	return s.log.List(ctx)
}
