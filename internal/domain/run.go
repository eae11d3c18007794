// internal/domain/run.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScrapeRun is the bookkeeping record written once per pipeline invocation.
type ScrapeRun struct {
	ID            uuid.UUID `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	RowsSeen      int       `json:"rows_seen"`
	RowsSkipped   int       `json:"rows_skipped"`
	Inserted      int       `json:"inserted"`
	Duplicates    int       `json:"duplicates"`
	GeocodeMisses int       `json:"geocode_misses"`
}
