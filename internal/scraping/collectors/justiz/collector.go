// internal/scraping/collectors/justiz/collector.go
package justiz

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/scubbx/edikt-scraper/internal/config"
	"github.com/scubbx/edikt-scraper/internal/domain"
	"github.com/scubbx/edikt-scraper/pkg/logger"
)

// tableClass marks the notice table on the result page.
const tableClass = "rowlink"

// noiseSubstring is a formatting artifact of the location cell, stripped from
// the stored Ortsstring. The postal code is taken from the raw text first.
const noiseSubstring = "Einfamilienhaus"

// Collector fetches the Edikte search page and extracts one record per
// table row.
type Collector struct {
	client    *http.Client
	baseURL   string
	searchURL string
	log       *logger.Logger
}

func NewCollector(cfg config.JustizConfig, log *logger.Logger) *Collector {
	return &Collector{
		client:    &http.Client{Timeout: cfg.Timeout()},
		baseURL:   cfg.BaseURL(),
		searchURL: cfg.SearchURL(),
		log:       log,
	}
}

// Run fetches the search page and extracts all well-formed rows. It returns
// the records, the number of rows skipped as malformed, and a fatal error
// when the page cannot be fetched or carries no notice table.
func (c *Collector) Run(ctx context.Context) ([]domain.Edikt, int, error) {
	doc, err := c.fetch(ctx)
	if err != nil {
		return nil, 0, err
	}
	return c.Extract(doc)
}

func (c *Collector) fetch(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.searchURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status code %d", c.searchURL, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// Extract walks the rows of the first element with the notice-table class.
// Rows with fewer than 4 cells or without a link anchor are skipped; the
// absence of the table itself is fatal.
func (c *Collector) Extract(doc *goquery.Document) ([]domain.Edikt, int, error) {
	table := doc.Find("." + tableClass).First()
	if table.Length() == 0 {
		return nil, 0, fmt.Errorf("no element with class %q in document", tableClass)
	}

	var ediktes []domain.Edikt
	skipped := 0

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			// Header and decoration rows land here too; only count rows
			// that carried data cells at all.
			if cells.Length() > 0 {
				skipped++
				c.log.Warnf("skipping row %d: %d cells", i, cells.Length())
			}
			return
		}
		e, err := c.extractRow(cells)
		if err != nil {
			skipped++
			c.log.Warnf("skipping row %d: %v", i, err)
			return
		}
		ediktes = append(ediktes, e)
	})

	return ediktes, skipped, nil
}

// extractRow builds one record from the cells of a row. Cell 0 only carries
// a presentational counter and is ignored.
func (c *Collector) extractRow(cells *goquery.Selection) (domain.Edikt, error) {
	ediktCell := cells.Eq(1)
	href, ok := ediktCell.Find("a").First().Attr("href")
	if !ok {
		return domain.Edikt{}, fmt.Errorf("no anchor in edikt cell")
	}

	ediktText := ediktCell.Text()
	ortText := cells.Eq(2).Text()

	e := domain.Edikt{
		Edikt:             ediktText,
		Link:              c.baseURL + "/" + href,
		Ortsstring:        strings.ReplaceAll(ortText, noiseSubstring, ""),
		Objektbezeichnung: cells.Eq(3).Text(),
		Edikttype:         domain.ParseEdiktType(ediktText),
		PLZ:               domain.ParseEdiktPLZ(ortText),
	}
	if e.Edikttype.HasTermin() {
		if date, ok := domain.ParseEdiktDate(ediktText); ok {
			e.Ediktdate = date
		}
	}
	return e, nil
}
