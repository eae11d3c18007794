// internal/repositories/postgres.go
package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scubbx/edikt-scraper/internal/domain"
)

// PostgresEdiktRepository stores notices in a PostGIS-enabled Postgres
// database. The geom column is derived from the geocoded coordinates at
// insert time and carries a GIST index for geographic queries.
type PostgresEdiktRepository struct {
	db *pgxpool.Pool
}

func NewPostgresEdiktRepository(ctx context.Context, dsn string) (*PostgresEdiktRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresEdiktRepository{db: pool}, nil
}

// Init creates the schema when it does not exist yet. Safe to call on every
// run.
func (r *PostgresEdiktRepository) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis`,
		`CREATE TABLE IF NOT EXISTS ediktes (
			id                 bigserial PRIMARY KEY,
			edikt              text NOT NULL,
			link               text NOT NULL,
			ortsstring         text NOT NULL DEFAULT '',
			objektbezeichnung  text NOT NULL DEFAULT '',
			edikttype          text NOT NULL DEFAULT '',
			ediktdate          text NOT NULL DEFAULT '',
			plz                text NOT NULL DEFAULT '',
			geocode_placename  text,
			geocode_countyname text,
			geocode_lat        double precision,
			geocode_lon        double precision,
			geocode_accuracy   text,
			fetchdate          timestamptz NOT NULL,
			reviewed           boolean NOT NULL DEFAULT false,
			geom               geometry(Point, 4326),
			UNIQUE (link, edikt)
		)`,
		`CREATE INDEX IF NOT EXISTS ediktes_geom_idx ON ediktes USING GIST (geom)`,
		`CREATE INDEX IF NOT EXISTS ediktes_link_fetchdate_idx ON ediktes (link, fetchdate DESC)`,
		`CREATE TABLE IF NOT EXISTS scrape_runs (
			id             uuid PRIMARY KEY,
			started_at     timestamptz NOT NULL,
			finished_at    timestamptz NOT NULL,
			rows_seen      integer NOT NULL,
			rows_skipped   integer NOT NULL,
			inserted       integer NOT NULL,
			duplicates     integer NOT NULL,
			geocode_misses integer NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Insert appends one observation. ON CONFLICT DO NOTHING implements the
// single-observation retention: an already-seen (link, edikt) pair affects
// zero rows and is reported as a duplicate, not an error.
func (r *PostgresEdiktRepository) Insert(ctx context.Context, e domain.Edikt) (bool, error) {
	var placename, countyname, accuracy *string
	var lat, lon *float64
	if e.Geocode != nil {
		placename = &e.Geocode.Placename
		countyname = &e.Geocode.Countyname
		lat = &e.Geocode.Lat
		lon = &e.Geocode.Lon
		accuracy = &e.Geocode.Accuracy
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO ediktes (
			edikt, link, ortsstring, objektbezeichnung, edikttype, ediktdate,
			plz, geocode_placename, geocode_countyname, geocode_lat,
			geocode_lon, geocode_accuracy, fetchdate, reviewed, geom
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, false,
			CASE WHEN $10::double precision IS NOT NULL AND $11::double precision IS NOT NULL
			     THEN ST_SetSRID(ST_MakePoint($11, $10), 4326)
			END
		)
		ON CONFLICT (link, edikt) DO NOTHING`,
		e.Edikt, e.Link, e.Ortsstring, e.Objektbezeichnung, string(e.Edikttype),
		e.Ediktdate, e.PLZ, placename, countyname, lat, lon, accuracy, e.Fetchdate,
	)
	if err != nil {
		return false, fmt.Errorf("insert edikt: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

const ediktColumns = `
	id, edikt, link, ortsstring, objektbezeichnung, edikttype, ediktdate,
	plz, geocode_placename, geocode_countyname, geocode_lat, geocode_lon,
	geocode_accuracy, fetchdate, reviewed`

// LatestPerLink implements the grouped-max projection over the history table.
func (r *PostgresEdiktRepository) LatestPerLink(ctx context.Context) ([]domain.Edikt, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT ON (link)`+ediktColumns+`
		FROM ediktes
		ORDER BY link, fetchdate DESC`)
	if err != nil {
		return nil, fmt.Errorf("query latest per link: %w", err)
	}
	defer rows.Close()
	return scanEdiktes(rows)
}

// Nearby exercises the spatial index: all geocoded rows within radiusMeters
// of the given point.
func (r *PostgresEdiktRepository) Nearby(ctx context.Context, lat, lon, radiusMeters float64) ([]domain.Edikt, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+ediktColumns+`
		FROM ediktes
		WHERE geom IS NOT NULL
		  AND ST_DWithin(geom::geography, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
		ORDER BY fetchdate DESC, id`,
		lat, lon, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("query nearby: %w", err)
	}
	defer rows.Close()
	return scanEdiktes(rows)
}

func (r *PostgresEdiktRepository) SetReviewed(ctx context.Context, id int64, reviewed bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE ediktes SET reviewed = $2 WHERE id = $1`, id, reviewed)
	if err != nil {
		return fmt.Errorf("set reviewed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set reviewed: no edikt with id %d", id)
	}
	return nil
}

func (r *PostgresEdiktRepository) RecordRun(ctx context.Context, run domain.ScrapeRun) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO scrape_runs (
			id, started_at, finished_at, rows_seen, rows_skipped,
			inserted, duplicates, geocode_misses
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID, run.StartedAt, run.FinishedAt, run.RowsSeen, run.RowsSkipped,
		run.Inserted, run.Duplicates, run.GeocodeMisses,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

func (r *PostgresEdiktRepository) Runs(ctx context.Context) ([]domain.ScrapeRun, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, started_at, finished_at, rows_seen, rows_skipped,
		       inserted, duplicates, geocode_misses
		FROM scrape_runs
		ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ScrapeRun
	for rows.Next() {
		var run domain.ScrapeRun
		if err := rows.Scan(
			&run.ID, &run.StartedAt, &run.FinishedAt, &run.RowsSeen,
			&run.RowsSkipped, &run.Inserted, &run.Duplicates, &run.GeocodeMisses,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *PostgresEdiktRepository) Close() {
	r.db.Close()
}

func scanEdiktes(rows pgx.Rows) ([]domain.Edikt, error) {
	var ediktes []domain.Edikt
	for rows.Next() {
		var e domain.Edikt
		var edikttype string
		var placename, countyname, accuracy *string
		var lat, lon *float64
		if err := rows.Scan(
			&e.ID, &e.Edikt, &e.Link, &e.Ortsstring, &e.Objektbezeichnung,
			&edikttype, &e.Ediktdate, &e.PLZ, &placename, &countyname,
			&lat, &lon, &accuracy, &e.Fetchdate, &e.Reviewed,
		); err != nil {
			return nil, fmt.Errorf("scan edikt: %w", err)
		}
		e.Edikttype = domain.EdiktType(edikttype)
		if lat != nil && lon != nil {
			e.Geocode = &domain.Geocode{
				Lat: *lat,
				Lon: *lon,
			}
			if placename != nil {
				e.Geocode.Placename = *placename
			}
			if countyname != nil {
				e.Geocode.Countyname = *countyname
			}
			if accuracy != nil {
				e.Geocode.Accuracy = *accuracy
			}
		}
		ediktes = append(ediktes, e)
	}
	return ediktes, rows.Err()
}
