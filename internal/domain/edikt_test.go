package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEdiktType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  EdiktType
	}{
		{
			name:  "versteigerung",
			input: "Versteigerung am (12.03.2024)",
			want:  EdiktTypeVersteigerung,
		},
		{
			name:  "entfall",
			input: "Entfall des Termins (05.01.2024)",
			want:  EdiktTypeEntfall,
		},
		{
			name:  "zuschlag mit ueberbot",
			input: "Zuschlag mit Überbot",
			want:  EdiktTypeZuschlagMit,
		},
		{
			name:  "zuschlag ohne ueberbot",
			input: "Zuschlag ohne Überbot",
			want:  EdiktTypeZuschlagOhne,
		},
		{
			name:  "marker position does not matter",
			input: "Bekanntmachung: Entfall des Termins wegen Zahlung",
			want:  EdiktTypeEntfall,
		},
		{
			name:  "no marker",
			input: "Sonstige Bekanntmachung",
			want:  EdiktTypeUnbekannt,
		},
		{
			name:  "empty",
			input: "",
			want:  EdiktTypeUnbekannt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEdiktType(tt.input))
		})
	}
}

func TestParseEdiktDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "date in parentheses",
			input:  "Versteigerung am (12.03.2024)",
			want:   "12.03.2024",
			wantOK: true,
		},
		{
			name:   "no parentheses",
			input:  "Zuschlag ohne Überbot",
			wantOK: false,
		},
		{
			name:   "opening without closing",
			input:  "Versteigerung am (12.03.2024",
			wantOK: false,
		},
		{
			name:   "first pair wins",
			input:  "Entfall des Termins (05.01.2024) (neu)",
			want:   "05.01.2024",
			wantOK: true,
		},
		{
			name:   "empty parentheses",
			input:  "Versteigerung ()",
			want:   "",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEdiktDate(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEdiktPLZ(t *testing.T) {
	assert.Equal(t, "1010", ParseEdiktPLZ("1010 Wien, Innere Stadt"))
	assert.Equal(t, "8010", ParseEdiktPLZ("8010Graz"))
	assert.Equal(t, "90", ParseEdiktPLZ("90"))
	assert.Equal(t, "", ParseEdiktPLZ(""))
}

func TestHasTermin(t *testing.T) {
	assert.True(t, EdiktTypeVersteigerung.HasTermin())
	assert.True(t, EdiktTypeEntfall.HasTermin())
	assert.False(t, EdiktTypeZuschlagMit.HasTermin())
	assert.False(t, EdiktTypeZuschlagOhne.HasTermin())
	assert.False(t, EdiktTypeUnbekannt.HasTermin())
}
