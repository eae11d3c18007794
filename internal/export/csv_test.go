package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scubbx/edikt-scraper/internal/domain"
)

func testEdiktes() []domain.Edikt {
	return []domain.Edikt{
		{
			Edikt:             "Versteigerung am (12.03.2024)",
			Link:              "https://example.test/doc/1",
			Ortsstring:        "1010 Wien, Innere Stadt",
			Objektbezeichnung: "Haus mit Garten",
			Edikttype:         domain.EdiktTypeVersteigerung,
			Ediktdate:         "12.03.2024",
			PLZ:               "1010",
			Geocode: &domain.Geocode{
				Placename:  "Wien",
				Countyname: "Wien",
				Lat:        48.21,
				Lon:        16.37,
				Accuracy:   "4",
			},
		},
		{
			Edikt:     "Zuschlag ohne Überbot",
			Link:      "https://example.test/doc/2",
			Edikttype: domain.EdiktTypeZuschlagOhne,
			PLZ:       "8010",
		},
		{
			Edikt:     "Versteigerung am (20.04.2024)",
			Link:      "https://example.test/doc/3",
			Edikttype: domain.EdiktTypeVersteigerung,
			Ediktdate: "20.04.2024",
			PLZ:       "9999",
		},
	}
}

func newTestWriter(t *testing.T) (*SnapshotWriter, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "extracted.csv")
	w := NewSnapshotWriter(path)
	w.now = func() time.Time { return time.Date(2024, 3, 1, 6, 30, 0, 0, time.UTC) }
	return w, dir
}

func TestWriteFiltersToVersteigerung(t *testing.T) {
	w, dir := newTestWriter(t)
	require.NoError(t, w.Write(testEdiktes()))

	data, err := os.ReadFile(filepath.Join(dir, "extracted.csv"))
	require.NoError(t, err)

	want := "edikt,link,ortsstring,objektbezeichnung,edikttype,ediktdate,plz," +
		"geocode_placename,geocode_countyname,geocode_lat,geocode_lon,geocode_accuracy\n" +
		"Versteigerung am (12.03.2024),https://example.test/doc/1," +
		"\"1010 Wien, Innere Stadt\",Haus mit Garten,Versteigerung,12.03.2024,1010," +
		"Wien,Wien,48.21,16.37,4\n" +
		"Versteigerung am (20.04.2024),https://example.test/doc/3,,," +
		"Versteigerung,20.04.2024,9999,,,,,\n"
	assert.Equal(t, want, string(data))
}

func TestWriteCreatesDatedArchiveCopy(t *testing.T) {
	w, dir := newTestWriter(t)
	require.NoError(t, w.Write(testEdiktes()))

	working, err := os.ReadFile(filepath.Join(dir, "extracted.csv"))
	require.NoError(t, err)
	archived, err := os.ReadFile(filepath.Join(dir, "20240301_extracted.csv"))
	require.NoError(t, err)
	assert.Equal(t, working, archived)
}

func TestWriteOverwritesWorkingFile(t *testing.T) {
	w, dir := newTestWriter(t)

	require.NoError(t, w.Write(testEdiktes()))
	first, err := os.ReadFile(filepath.Join(dir, "extracted.csv"))
	require.NoError(t, err)

	// A second identical run must be byte-for-byte stable, not append.
	require.NoError(t, w.Write(testEdiktes()))
	second, err := os.ReadFile(filepath.Join(dir, "extracted.csv"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWriteEmptyRunStillWritesHeader(t *testing.T) {
	w, dir := newTestWriter(t)
	require.NoError(t, w.Write(nil))

	data, err := os.ReadFile(filepath.Join(dir, "extracted.csv"))
	require.NoError(t, err)

	assert.Equal(t, "edikt,link,ortsstring,objektbezeichnung,edikttype,ediktdate,plz,"+
		"geocode_placename,geocode_countyname,geocode_lat,geocode_lon,geocode_accuracy\n",
		string(data))
}
