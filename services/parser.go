package services

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"foreclosure-scraper/models"
	"foreclosure-scraper/utils"
)

// Selectors for the structures the sale site renders on a detail page.
const (
	detailsTableSelector = "table.table-striped"
	headingCellSelector  = "td.heading-bold.columnwidth-15"
	statusTableSelector  = "table#longTable"
)

// Parser extracts a property record and its status history from one
// listing's detail-page HTML.
type Parser struct {
	logger *utils.Logger
}

// NewParser creates a Parser with the given logger.
func NewParser(logger *utils.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse returns the detail fields and ordered status history of one listing.
// Missing tables are tolerated and yield empty results; only a document that
// cannot be constructed at all is an error.
func (p *Parser) Parse(html string) (map[string]string, []models.StatusEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, fmt.Errorf("parser: build document: %w", err)
	}
	return p.parseDetails(doc), p.parseStatusHistory(doc), nil
}

// parseDetails walks the main details table. A row contributes a field only
// when it has both a bold heading cell and a class-less value cell; the
// heading text minus its trailing colon is the field name.
func (p *Parser) parseDetails(doc *goquery.Document) map[string]string {
	details := make(map[string]string)

	table := doc.Find(detailsTableSelector).First()
	if table.Length() == 0 {
		p.logger.Warn("[parser] Details table not found in HTML")
		return details
	}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		heading := row.Find(headingCellSelector).First()
		if heading.Length() == 0 {
			return
		}

		var value *goquery.Selection
		row.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
			if _, hasClass := td.Attr("class"); !hasClass {
				value = td
				return false
			}
			return true
		})
		if value == nil {
			return
		}

		key := strings.TrimSuffix(strings.TrimSpace(heading.Text()), ":")
		details[key] = strings.TrimSpace(value.Text())
	})

	return details
}

// parseStatusHistory reads the status table in document order. Rows with
// fewer than two cells are skipped.
func (p *Parser) parseStatusHistory(doc *goquery.Document) []models.StatusEntry {
	var history []models.StatusEntry

	table := doc.Find(statusTableSelector).First()
	if table.Length() == 0 {
		p.logger.Warn("[parser] Status history table not found in HTML")
		return history
	}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		history = append(history, models.StatusEntry{
			Status: strings.TrimSpace(cells.Eq(0).Text()),
			Date:   strings.TrimSpace(cells.Eq(1).Text()),
		})
	})

	return history
}
