// cmd/scraper/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/scubbx/edikt-scraper/internal/config"
	"github.com/scubbx/edikt-scraper/internal/export"
	"github.com/scubbx/edikt-scraper/internal/geocode"
	"github.com/scubbx/edikt-scraper/internal/repositories"
	"github.com/scubbx/edikt-scraper/internal/scraping/collectors/justiz"
	"github.com/scubbx/edikt-scraper/internal/services/scraping"
	"github.com/scubbx/edikt-scraper/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs/app.yaml", "path to the config file")
	flag.Parse()

	log := logger.New("scraper")

	// .env is optional; real deployments set DATABASE_URL directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("loading config:", err)
		os.Exit(1)
	}

	var repo repositories.EdiktRepository
	ctx := context.Background()
	if cfg.Database.URL != "" {
		pg, err := repositories.NewPostgresEdiktRepository(ctx, cfg.Database.URL)
		if err != nil {
			log.Error("connecting to database:", err)
			os.Exit(1)
		}
		repo = pg
	} else {
		log.Warn("no database configured, observations will not be persisted")
		repo = repositories.NewMemoryEdiktRepository()
	}
	defer repo.Close()

	geocoder, err := geocode.NewGeoNamesGeocoder(cfg.Geocode.Dataset)
	if err != nil {
		log.Error("loading geocode dataset:", err)
		os.Exit(1)
	}
	log.Infof("loaded %d postal codes from %s", geocoder.Len(), cfg.Geocode.Dataset)

	svc := scraping.NewScraperService(
		justiz.NewCollector(cfg.Scraping.Justiz, log),
		geocoder,
		repo,
		export.NewSnapshotWriter(cfg.Export.CSVPath),
		log,
	)

	if _, err := svc.Run(ctx); err != nil {
		log.Error("scrape run failed:", err)
		os.Exit(1)
	}
}
