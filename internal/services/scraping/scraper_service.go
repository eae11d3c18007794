// internal/services/scraping/scraper_service.go
package scraping

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scubbx/edikt-scraper/internal/domain"
	"github.com/scubbx/edikt-scraper/internal/geocode"
	"github.com/scubbx/edikt-scraper/internal/repositories"
	"github.com/scubbx/edikt-scraper/pkg/logger"
)

// Collector yields the extracted records of one fetch plus the count of rows
// skipped as malformed.
type Collector interface {
	Run(ctx context.Context) ([]domain.Edikt, int, error)
}

// Exporter writes the run-local auction snapshot.
type Exporter interface {
	Write(ediktes []domain.Edikt) error
}

// ScraperService runs one scrape: collect, enrich, store and export. It is
// built to be invoked once per run by an external scheduler and is safe to
// re-run; the repository's dedup rule absorbs repeated observations.
type ScraperService struct {
	collector Collector
	geocoder  geocode.Geocoder
	repo      repositories.EdiktRepository
	exporter  Exporter
	log       *logger.Logger
	now       func() time.Time
}

func NewScraperService(
	collector Collector,
	geocoder geocode.Geocoder,
	repo repositories.EdiktRepository,
	exporter Exporter,
	log *logger.Logger,
) *ScraperService {
	return &ScraperService{
		collector: collector,
		geocoder:  geocoder,
		repo:      repo,
		exporter:  exporter,
		log:       log,
		now:       time.Now,
	}
}

// Run executes one pipeline pass. Fetch and extraction failures are fatal;
// per-row conditions (geocode miss, duplicate observation) are counted and
// the run continues. Every record of a run carries the same fetchdate.
func (s *ScraperService) Run(ctx context.Context) (domain.ScrapeRun, error) {
	run := domain.ScrapeRun{
		ID:        uuid.New(),
		StartedAt: s.now(),
	}

	if err := s.repo.Init(ctx); err != nil {
		return run, fmt.Errorf("init store: %w", err)
	}

	ediktes, skipped, err := s.collector.Run(ctx)
	if err != nil {
		return run, fmt.Errorf("collect ediktes: %w", err)
	}
	run.RowsSeen = len(ediktes) + skipped
	run.RowsSkipped = skipped
	s.log.Infof("collected %d ediktes (%d rows skipped)", len(ediktes), skipped)

	fetchdate := s.now()
	for i := range ediktes {
		ediktes[i].Fetchdate = fetchdate
		s.enrich(&ediktes[i], &run)

		inserted, err := s.repo.Insert(ctx, ediktes[i])
		if err != nil {
			return run, fmt.Errorf("store edikt %q: %w", ediktes[i].Link, err)
		}
		if inserted {
			run.Inserted++
		} else {
			run.Duplicates++
		}
	}

	if err := s.exporter.Write(ediktes); err != nil {
		return run, fmt.Errorf("export snapshot: %w", err)
	}

	run.FinishedAt = s.now()
	if err := s.repo.RecordRun(ctx, run); err != nil {
		return run, fmt.Errorf("record run: %w", err)
	}

	s.log.Infof("run %s done: %d inserted, %d duplicates, %d geocode misses",
		run.ID, run.Inserted, run.Duplicates, run.GeocodeMisses)
	return run, nil
}

// enrich resolves the record's postal code. A miss or a lookup fault leaves
// the geo fields absent; neither stops the run.
func (s *ScraperService) enrich(e *domain.Edikt, run *domain.ScrapeRun) {
	loc, err := s.geocoder.Lookup(e.PLZ)
	if err != nil {
		run.GeocodeMisses++
		s.log.Warnf("geocode lookup for %q failed: %v", e.PLZ, err)
		return
	}
	if loc == nil {
		run.GeocodeMisses++
		return
	}
	e.Geocode = loc
}
