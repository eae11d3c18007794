// cmd/api/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/scubbx/edikt-scraper/internal/api/handlers"
	"github.com/scubbx/edikt-scraper/internal/config"
	"github.com/scubbx/edikt-scraper/internal/repositories"
	"github.com/scubbx/edikt-scraper/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs/app.yaml", "path to the config file")
	flag.Parse()

	log := logger.New("api")

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("loading config:", err)
		os.Exit(1)
	}
	if cfg.Database.URL == "" {
		log.Error("the api requires a configured database")
		os.Exit(1)
	}

	ctx := context.Background()
	repo, err := repositories.NewPostgresEdiktRepository(ctx, cfg.Database.URL)
	if err != nil {
		log.Error("connecting to database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.Init(ctx); err != nil {
		log.Error("initializing schema:", err)
		os.Exit(1)
	}

	r := mux.NewRouter()
	handlers.NewEdiktHandler(repo).RegisterRoutes(r)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Info("api listening on", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Error("server stopped:", err)
		os.Exit(1)
	}
}
