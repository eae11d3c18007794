// internal/geocode/geocoder.go
package geocode

import (
	"github.com/scubbx/edikt-scraper/internal/domain"
)

// Geocoder resolves a 4-character postal code to a location. A nil result
// with a nil error means the code is unknown; that is a normal outcome, not
// a failure. Errors indicate a fault in the backing source and are treated
// by callers the same as a miss.
type Geocoder interface {
	Lookup(plz string) (*domain.Geocode, error)
}

// Static is a fixed in-memory Geocoder, used in tests and offline runs.
type Static map[string]domain.Geocode

func (s Static) Lookup(plz string) (*domain.Geocode, error) {
	g, ok := s[plz]
	if !ok {
		return nil, nil
	}
	return &g, nil
}
