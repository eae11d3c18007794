package justiz

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scubbx/edikt-scraper/internal/config"
	"github.com/scubbx/edikt-scraper/internal/domain"
	"github.com/scubbx/edikt-scraper/pkg/logger"
)

func testCollector() *Collector {
	return NewCollector(config.JustizConfig{
		Server:   "edikte.justiz.gv.at",
		Basepath: "/edikte/ex/exedi3.nsf",
	}, logger.New("test"))
}

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const samplePage = `
<html><body>
<table class="rowlink">
<tr><th>Nr</th><th>Edikt</th><th>Ort</th><th>Objekt</th></tr>
<tr>
  <td>1</td>
  <td><a href="0a1b2c?OpenDocument">Versteigerung am (12.03.2024)</a></td>
  <td>1010 Wien, Innere StadtEinfamilienhaus</td>
  <td>Einfamilienhaus mit Garten</td>
</tr>
<tr>
  <td>2</td>
  <td>Zuschlag ohne Überbot</td>
  <td>8010 Graz</td>
  <td>Wohnung</td>
</tr>
<tr>
  <td>3</td>
  <td><a href="d4e5f6?OpenDocument">Entfall des Termins (05.01.2024)</a></td>
</tr>
<tr>
  <td>4</td>
  <td><a href="a7b8c9?OpenDocument">Zuschlag mit Überbot</a></td>
  <td>4020 Linz</td>
  <td>Grundstück</td>
</tr>
</table>
</body></html>`

func TestExtract(t *testing.T) {
	c := testCollector()
	ediktes, skipped, err := c.Extract(parseHTML(t, samplePage))
	require.NoError(t, err)

	// Row 2 has no anchor, row 3 only 2 cells; neither halts the run.
	assert.Equal(t, 2, skipped)
	require.Len(t, ediktes, 2)

	first := ediktes[0]
	assert.Equal(t, "Versteigerung am (12.03.2024)", first.Edikt)
	assert.Equal(t, "https://edikte.justiz.gv.at/edikte/ex/exedi3.nsf/0a1b2c?OpenDocument", first.Link)
	assert.Equal(t, "1010 Wien, Innere Stadt", first.Ortsstring)
	assert.Equal(t, "Einfamilienhaus mit Garten", first.Objektbezeichnung)
	assert.Equal(t, domain.EdiktTypeVersteigerung, first.Edikttype)
	assert.Equal(t, "12.03.2024", first.Ediktdate)
	assert.Equal(t, "1010", first.PLZ)
	assert.Nil(t, first.Geocode)

	second := ediktes[1]
	assert.Equal(t, domain.EdiktTypeZuschlagMit, second.Edikttype)
	assert.Empty(t, second.Ediktdate)
	assert.Equal(t, "4020", second.PLZ)
}

func TestExtractPLZBeforeNoiseRemoval(t *testing.T) {
	// The noise substring sits at the front of the cell; the postal code
	// must still come from the raw text.
	page := `
<table class="rowlink">
<tr>
  <td>1</td>
  <td><a href="x?Open">Versteigerung am (01.02.2024)</a></td>
  <td>5020 Salzburg Einfamilienhaus</td>
  <td>Haus</td>
</tr>
</table>`
	c := testCollector()
	ediktes, skipped, err := c.Extract(parseHTML(t, page))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, ediktes, 1)
	assert.Equal(t, "5020", ediktes[0].PLZ)
	assert.Equal(t, "5020 Salzburg ", ediktes[0].Ortsstring)
}

func TestExtractNoTable(t *testing.T) {
	c := testCollector()
	_, _, err := c.Extract(parseHTML(t, `<html><body><p>Wartung</p></body></html>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rowlink")
}

func TestExtractEmptyTable(t *testing.T) {
	c := testCollector()
	ediktes, skipped, err := c.Extract(parseHTML(t, `<div class="rowlink"></div>`))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Empty(t, ediktes)
}
