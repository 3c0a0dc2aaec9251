// Package history keeps the bounded, most-recent-first log of conversions.
//
// The whole log is stored as one JSON array under StorageKey. Every mutation
// is a read-modify-write of that value.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/runnerr0/unitconv/internal/storage"
)

const (
	// StorageKey is the KV slot holding the serialised log.
	StorageKey = "conversionHistory"

	// Capacity is the maximum number of records kept.
	Capacity = 10
)

// ErrCorruptHistory marks stored history that cannot be decoded. List
// recovers from it by returning an empty log.
var ErrCorruptHistory = errors.New("corrupt history")

// Log is the conversion history over a KV store.
type Log struct {
	kv     storage.KV
	logger *zap.Logger
}

func NewLog(kv storage.KV, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{kv: kv, logger: logger.Named("history")}
}

// List returns the stored records, most recent first. Missing, unreadable
// or corrupt data yields an empty slice; the cause is logged.
func (l *Log) List(ctx context.Context) []Record {
	records, err := l.load(ctx)
	if err != nil {
		l.logger.Warn("discarding unreadable history", zap.Error(err))
		return []Record{}
	}
	return records
}

func (l *Log) load(ctx context.Context) ([]Record, error) {
	raw, ok, err := l.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if !ok || raw == "" {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHistory, err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (l *Log) save(ctx context.Context, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := l.kv.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// loadForWrite is load for mutations: corrupt data is replaced, but a failed
// read aborts so the stored records are not overwritten.
func (l *Log) loadForWrite(ctx context.Context) ([]Record, error) {
	records, err := l.load(ctx)
	if errors.Is(err, ErrCorruptHistory) {
		l.logger.Warn("replacing corrupt history", zap.Error(err))
		return []Record{}, nil
	}
	return records, err
}

// Record prepends r and evicts the oldest entries beyond Capacity.
func (l *Log) Record(ctx context.Context, r Record) error {
	existing, err := l.loadForWrite(ctx)
	if err != nil {
		return err
	}
	records := append([]Record{r}, existing...)
	if len(records) > Capacity {
		evicted := len(records) - Capacity
		records = records[:Capacity]
		l.logger.Debug("evicted history records", zap.Int("count", evicted))
	}
	return l.save(ctx, records)
}

// Remove deletes the record with the given id. Unknown ids are ignored.
func (l *Log) Remove(ctx context.Context, id string) error {
	records, err := l.loadForWrite(ctx)
	if err != nil {
		return err
	}
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	return l.save(ctx, kept)
}

// Find returns the record with the given id.
func (l *Log) Find(ctx context.Context, id string) (Record, bool) {
	for _, r := range l.List(ctx) {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Clear drops every record.
func (l *Log) Clear(ctx context.Context) error {
	if err := l.kv.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
