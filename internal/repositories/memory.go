// internal/repositories/memory.go
package repositories

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/scubbx/edikt-scraper/internal/domain"
)

// MemoryEdiktRepository keeps the store in process memory with the same
// dedup semantics as the Postgres implementation. Used in tests and for
// store-less dry runs.
type MemoryEdiktRepository struct {
	mu      sync.Mutex
	nextID  int64
	ediktes []domain.Edikt
	seen    map[string]struct{}
	runs    []domain.ScrapeRun
}

func NewMemoryEdiktRepository() *MemoryEdiktRepository {
	return &MemoryEdiktRepository{
		nextID: 1,
		seen:   make(map[string]struct{}),
	}
}

func (r *MemoryEdiktRepository) Init(ctx context.Context) error { return nil }

func dedupKey(e domain.Edikt) string {
	return e.Link + "\x00" + e.Edikt
}

func (r *MemoryEdiktRepository) Insert(ctx context.Context, e domain.Edikt) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dedupKey(e)
	if _, ok := r.seen[key]; ok {
		return false, nil
	}
	r.seen[key] = struct{}{}

	e.ID = r.nextID
	r.nextID++
	if e.Geocode != nil {
		g := *e.Geocode
		e.Geocode = &g
	}
	r.ediktes = append(r.ediktes, e)
	return true, nil
}

func (r *MemoryEdiktRepository) LatestPerLink(ctx context.Context) ([]domain.Edikt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	latest := make(map[string]domain.Edikt)
	for _, e := range r.ediktes {
		cur, ok := latest[e.Link]
		if !ok || e.Fetchdate.After(cur.Fetchdate) {
			latest[e.Link] = e
		}
	}

	out := make([]domain.Edikt, 0, len(latest))
	for _, e := range latest {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Link < out[j].Link })
	return out, nil
}

func (r *MemoryEdiktRepository) Nearby(ctx context.Context, lat, lon, radiusMeters float64) ([]domain.Edikt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Edikt
	for _, e := range r.ediktes {
		if e.Geocode == nil {
			continue
		}
		if haversineMeters(lat, lon, e.Geocode.Lat, e.Geocode.Lon) <= radiusMeters {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *MemoryEdiktRepository) SetReviewed(ctx context.Context, id int64, reviewed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.ediktes {
		if r.ediktes[i].ID == id {
			r.ediktes[i].Reviewed = reviewed
			return nil
		}
	}
	return fmt.Errorf("set reviewed: no edikt with id %d", id)
}

func (r *MemoryEdiktRepository) RecordRun(ctx context.Context, run domain.ScrapeRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, run)
	return nil
}

func (r *MemoryEdiktRepository) Runs(ctx context.Context) ([]domain.ScrapeRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ScrapeRun, len(r.runs))
	copy(out, r.runs)
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func (r *MemoryEdiktRepository) Close() {}

// Count reports the number of stored observations.
func (r *MemoryEdiktRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ediktes)
}

const earthRadiusMeters = 6371000

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
