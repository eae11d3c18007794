// internal/repositories/edikt_repository.go
package repositories

import (
	"context"

	"github.com/scubbx/edikt-scraper/internal/domain"
)

// EdiktRepository is the append-only notice store plus its derived views.
//
// Insert applies the store's sole deduplication rule: a (link, edikt) pair is
// kept only on first observation. It returns false, without error, when the
// pair was already present.
type EdiktRepository interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, e domain.Edikt) (bool, error)
	// LatestPerLink returns, for each distinct link, the row with the
	// maximum fetchdate.
	LatestPerLink(ctx context.Context) ([]domain.Edikt, error)
	// Nearby returns geocoded rows within radiusMeters of a point.
	Nearby(ctx context.Context, lat, lon, radiusMeters float64) ([]domain.Edikt, error)
	// SetReviewed flips the manual-review flag. The scrape pipeline never
	// calls this; it exists for the review workflow only.
	SetReviewed(ctx context.Context, id int64, reviewed bool) error
	RecordRun(ctx context.Context, run domain.ScrapeRun) error
	Runs(ctx context.Context) ([]domain.ScrapeRun, error)
	Close()
}
