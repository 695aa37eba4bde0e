// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package locations holds the list of visited locations. The list is loaded
// once at startup from the first configured source that yields data and
// falls back to a built-in dataset when every source fails.
package locations

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"footprints/internal/models"
)

// ErrLoading is returned by lookups made before the initial load finished.
var ErrLoading = errors.New("locations are still loading")

// ErrNotFound is returned when no location has the requested ID.
var ErrNotFound = errors.New("location not found")

// FallbackSource names the built-in dataset in snapshots and logs.
const FallbackSource = "fallback"

// Snapshot is an immutable view of a completed load.
type Snapshot struct {
	Locations  []models.Location
	Generation uint64
	Source     string
}

// Store holds the loaded locations. It is safe for concurrent use; the
// loaded slice is never modified after it is published.
type Store struct {
	sources  []Source
	fallback []models.Record

	startOnce sync.Once
	ready     chan struct{}
	onLoad    []func(Snapshot)

	mu   sync.RWMutex
	snap *Snapshot
	gen  uint64
}

// NewStore creates a store that will try sources in order.
func NewStore(sources ...Source) *Store {
	return &Store{
		sources:  sources,
		fallback: DefaultRecords(),
		ready:    make(chan struct{}),
	}
}

// OnLoad registers a callback invoked once the load completes. It must be
// called before Start.
func (s *Store) OnLoad(fn func(Snapshot)) {
	s.onLoad = append(s.onLoad, fn)
}

// Start begins loading in the background. Only the first call has effect.
func (s *Store) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go s.load(ctx)
	})
}

// Load runs the load synchronously and returns its snapshot. Only the
// first call to Load or Start loads anything; later calls wait for and
// return the first result.
func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	s.startOnce.Do(func() {
		s.load(ctx)
	})
	return s.Wait(ctx)
}

func (s *Store) load(ctx context.Context) {
	records, source := s.fetch(ctx)

	locs := make([]models.Location, len(records))
	for i, r := range records {
		locs[i] = r.Location(i + 1)
	}

	s.mu.Lock()
	s.gen++
	snap := &Snapshot{Locations: locs, Generation: s.gen, Source: source}
	s.snap = snap
	s.mu.Unlock()

	slog.Info("locations loaded", "source", source, "count", len(locs))
	for _, fn := range s.onLoad {
		fn(*snap)
	}
	close(s.ready)
}

// fetch returns the first successful source's records, or the fallback.
func (s *Store) fetch(ctx context.Context) ([]models.Record, string) {
	for _, src := range s.sources {
		records, err := src.Fetch(ctx)
		if err != nil {
			slog.Warn("location source failed, trying next", "source", src.Name(), "error", err)
			continue
		}
		return records, src.Name()
	}
	slog.Info("no location source available, using built-in data")
	return s.fallback, FallbackSource
}

// Ready returns a channel closed once the load has completed.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Snapshot returns the loaded data, or false while loading.
func (s *Store) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return Snapshot{}, false
	}
	return *s.snap, true
}

// Wait blocks until the load completes or ctx is done.
func (s *Store) Wait(ctx context.Context) (Snapshot, error) {
	select {
	case <-s.Ready():
		snap, _ := s.Snapshot()
		return snap, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// ByID returns the location with the given load-time ID.
func (s *Store) ByID(id int) (models.Location, error) {
	snap, ok := s.Snapshot()
	if !ok {
		return models.Location{}, ErrLoading
	}
	return snap.ByID(id)
}

// ByID looks up a location in the snapshot. IDs are 1-based positions.
func (sn Snapshot) ByID(id int) (models.Location, error) {
	if id < 1 || id > len(sn.Locations) {
		return models.Location{}, ErrNotFound
	}
	return sn.Locations[id-1], nil
}

// DefaultRecords returns the built-in two-entry dataset.
func DefaultRecords() []models.Record {
	return []models.Record{
		{
			Name:        "北京",
			Description: "中国首都，有长城、故宫等著名景点。",
			Coordinates: models.Coordinates{116.4074, 39.9042},
			VisitDate:   "2022-05-10",
			Category:    "城市",
		},
		{
			Name:        "上海",
			Description: "中国经济中心，有外滩、东方明珠等地标。",
			Coordinates: models.Coordinates{121.4737, 31.2304},
			VisitDate:   "2022-06-15",
			Category:    "城市",
		},
	}
}
