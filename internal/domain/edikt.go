// internal/domain/edikt.go
package domain

import (
	"strings"
	"time"
)

// EdiktType classifies the outcome/status of a published notice. The zero
// value means the notice text matched none of the known markers.
type EdiktType string

const (
	EdiktTypeVersteigerung EdiktType = "Versteigerung"
	EdiktTypeEntfall       EdiktType = "Entfall"
	EdiktTypeZuschlagMit   EdiktType = "Zuschlag+"
	EdiktTypeZuschlagOhne  EdiktType = "Zuschlag-"
	EdiktTypeUnbekannt     EdiktType = ""
)

// Geocode is the postal-code enrichment result. All fields are populated
// together; a missing lookup leaves the whole struct absent on the record.
type Geocode struct {
	Placename  string  `json:"placename"`
	Countyname string  `json:"countyname"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Accuracy   string  `json:"accuracy"`
}

// Edikt is one foreclosure-auction notice as observed in a single scrape run.
// (Link, Edikt) identifies the notice instance; the store deduplicates on it.
type Edikt struct {
	ID                int64     `json:"id"`
	Edikt             string    `json:"edikt"`
	Link              string    `json:"link"`
	Ortsstring        string    `json:"ortsstring"`
	Objektbezeichnung string    `json:"objektbezeichnung"`
	Edikttype         EdiktType `json:"edikttype"`
	Ediktdate         string    `json:"ediktdate,omitempty"`
	PLZ               string    `json:"plz"`
	Geocode           *Geocode  `json:"geocode,omitempty"`
	Fetchdate         time.Time `json:"fetchdate"`
	Reviewed          bool      `json:"reviewed"`
}

// ediktTypeMarkers is ordered; classification is first-match-wins.
var ediktTypeMarkers = []struct {
	marker string
	typ    EdiktType
}{
	{"Versteigerung", EdiktTypeVersteigerung},
	{"Entfall des Termins", EdiktTypeEntfall},
	{"Zuschlag mit Überbot", EdiktTypeZuschlagMit},
	{"Zuschlag ohne Überbot", EdiktTypeZuschlagOhne},
}

// ParseEdiktType classifies a notice text by substring containment against
// the known markers, in order.
func ParseEdiktType(ediktstring string) EdiktType {
	for _, m := range ediktTypeMarkers {
		if strings.Contains(ediktstring, m.marker) {
			return m.typ
		}
	}
	return EdiktTypeUnbekannt
}

// ParseEdiktDate returns the text between the first "(" and the first ")"
// following it. The second return is false when no such pair exists.
func ParseEdiktDate(ediktstring string) (string, bool) {
	open := strings.Index(ediktstring, "(")
	if open < 0 {
		return "", false
	}
	rest := ediktstring[open+1:]
	end := strings.Index(rest, ")")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// ParseEdiktPLZ returns the leading 4 characters of a location string, the
// position Austrian postal codes occupy in the source table.
func ParseEdiktPLZ(ortsstring string) string {
	r := []rune(ortsstring)
	if len(r) > 4 {
		r = r[:4]
	}
	return string(r)
}

// HasTermin reports whether the notice type carries a scheduled (or
// cancelled) date embedded in the notice text.
func (t EdiktType) HasTermin() bool {
	return t == EdiktTypeVersteigerung || t == EdiktTypeEntfall
}
