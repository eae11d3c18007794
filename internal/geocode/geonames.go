// internal/geocode/geonames.go
package geocode

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/scubbx/edikt-scraper/internal/domain"
)

// GeoNames column positions in the tab-separated postal-code dump
// (country, postal code, place name, admin1..3 name/code pairs, lat, lon,
// accuracy).
const (
	colPostalCode = 1
	colPlaceName  = 2
	colCountyName = 5
	colLat        = 9
	colLon        = 10
	colAccuracy   = 11
	numCols       = 12
)

// GeoNamesGeocoder answers postal-code lookups from a GeoNames postal-code
// dataset loaded once at construction. Lookups never touch the filesystem.
type GeoNamesGeocoder struct {
	byPLZ map[string]domain.Geocode
}

// NewGeoNamesGeocoder loads the tab-separated dataset at path. When a postal
// code appears on several lines, the first line wins.
func NewGeoNamesGeocoder(path string) (*GeoNamesGeocoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geocode dataset: %w", err)
	}
	defer f.Close()
	return parseGeoNames(f)
}

func parseGeoNames(r io.Reader) (*GeoNamesGeocoder, error) {
	g := &GeoNamesGeocoder{byPLZ: make(map[string]domain.Geocode)}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < numCols {
			continue
		}
		plz := strings.TrimSpace(fields[colPostalCode])
		if plz == "" {
			continue
		}
		if _, seen := g.byPLZ[plz]; seen {
			continue
		}
		lat, err := strconv.ParseFloat(fields[colLat], 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(fields[colLon], 64)
		if err != nil {
			continue
		}
		g.byPLZ[plz] = domain.Geocode{
			Placename:  fields[colPlaceName],
			Countyname: fields[colCountyName],
			Lat:        lat,
			Lon:        lon,
			Accuracy:   fields[colAccuracy],
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read geocode dataset at line %d: %w", line, err)
	}

	return g, nil
}

// Lookup implements Geocoder.
func (g *GeoNamesGeocoder) Lookup(plz string) (*domain.Geocode, error) {
	loc, ok := g.byPLZ[plz]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

// Len reports how many distinct postal codes are loaded.
func (g *GeoNamesGeocoder) Len() int {
	return len(g.byPLZ)
}
