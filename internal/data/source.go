// Package data supplies the Market Data collection: the built-in sample,
// dataset files and a remote HTTP endpoint, plus the Store that holds the
// currently loaded dataset.
package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"agri-market/internal/model"
)

// Source supplies the full ordered record collection in one call.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]model.MarketRecord, error)
}

// Invalidator is implemented by sources that cache and can be told to
// refetch on the next Load.
type Invalidator interface {
	Invalidate()
}

// ErrNotLoaded is returned by Store.Current before the first successful load.
var ErrNotLoaded = errors.New("market data not loaded")

// Dataset is one immutable snapshot of the collection. Records must not be
// modified after the snapshot is published.
type Dataset struct {
	Version  uint64
	Source   string
	Records  []model.MarketRecord
	LoadedAt time.Time
}

// Store holds the current Dataset and replaces it wholesale on reload. A
// failed reload leaves the previous snapshot in place.
type Store struct {
	source Source
	logger *slog.Logger

	mu      sync.RWMutex
	current *Dataset
	version uint64
	now     func() time.Time
}

func NewStore(source Source, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		source: source,
		logger: logger.With(slog.String("component", "data.store")),
		now:    time.Now,
	}
}

// Reload fetches the collection from the source and publishes it as a new
// version.
func (s *Store) Reload(ctx context.Context) (*Dataset, error) {
	start := s.now()
	records, err := s.source.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "reload failed",
			slog.String("source", s.source.Name()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("load %s: %w", s.source.Name(), err)
	}

	s.mu.Lock()
	s.version++
	ds := &Dataset{
		Version:  s.version,
		Source:   s.source.Name(),
		Records:  records,
		LoadedAt: s.now(),
	}
	s.current = ds
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("source", ds.Source),
		slog.Uint64("version", ds.Version),
		slog.Int("records", len(ds.Records)),
		slog.Duration("duration", s.now().Sub(start)))
	return ds, nil
}

// Refresh invalidates any source cache, then reloads.
func (s *Store) Refresh(ctx context.Context) (*Dataset, error) {
	if inv, ok := s.source.(Invalidator); ok {
		inv.Invalidate()
	}
	return s.Reload(ctx)
}

// Current returns the latest published dataset.
func (s *Store) Current() (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNotLoaded
	}
	return s.current, nil
}

func (s *Store) SourceName() string { return s.source.Name() }
