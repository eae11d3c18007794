// internal/export/csv.go
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/scubbx/edikt-scraper/internal/domain"
)

// Columns is the published column order of the snapshot file. Downstream
// consumers depend on it; do not reorder.
var Columns = []string{
	"edikt", "link", "ortsstring", "objektbezeichnung", "edikttype",
	"ediktdate", "plz", "geocode_placename", "geocode_countyname",
	"geocode_lat", "geocode_lon", "geocode_accuracy",
}

// SnapshotWriter writes the point-in-time CSV of announced auctions: a fixed
// working file, overwritten each run, plus a date-prefixed archival copy.
type SnapshotWriter struct {
	path string
	now  func() time.Time
}

func NewSnapshotWriter(path string) *SnapshotWriter {
	return &SnapshotWriter{path: path, now: time.Now}
}

// Write filters the run's records down to auction announcements and writes
// both files. The working file is truncated, never appended to.
func (w *SnapshotWriter) Write(ediktes []domain.Edikt) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := writeRows(f, ediktes); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}

	return w.archive()
}

func writeRows(out io.Writer, ediktes []domain.Edikt) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range ediktes {
		if e.Edikttype != domain.EdiktTypeVersteigerung {
			continue
		}
		if err := cw.Write(record(e)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

func record(e domain.Edikt) []string {
	row := []string{
		e.Edikt, e.Link, e.Ortsstring, e.Objektbezeichnung,
		string(e.Edikttype), e.Ediktdate, e.PLZ,
		"", "", "", "", "",
	}
	if e.Geocode != nil {
		row[7] = e.Geocode.Placename
		row[8] = e.Geocode.Countyname
		row[9] = strconv.FormatFloat(e.Geocode.Lat, 'f', -1, 64)
		row[10] = strconv.FormatFloat(e.Geocode.Lon, 'f', -1, 64)
		row[11] = e.Geocode.Accuracy
	}
	return row
}

// archive copies the working file to <YYYYMMDD>_<base name> next to it.
func (w *SnapshotWriter) archive() error {
	src, err := os.Open(w.path)
	if err != nil {
		return fmt.Errorf("open snapshot for archive: %w", err)
	}
	defer src.Close()

	stamp := w.now().Format("20060102")
	archivePath := filepath.Join(filepath.Dir(w.path), stamp+"_"+filepath.Base(w.path))
	dst, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("create archive copy: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy snapshot to %s: %w", archivePath, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close archive copy: %w", err)
	}
	return nil
}
