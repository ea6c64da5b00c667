package grt

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jewel-tracker/internal/models"
)

// ErrMarkupNotFound means the rate board block is missing from the page.
var ErrMarkupNotFound = errors.New("grt: state_rates block not found")

const rateBlockSelector = "ul.state_rates"

// rateEntry matches "<metal> - [<purity> - ]<weight> - Rs<rate>", e.g.
// "GOLD - 24k - 1 g - Rs7000" or "SILVER - 1 g - Rs85".
var rateEntry = regexp.MustCompile(`^(\w+)\s*-\s*(?:(\d+k)\s*-\s*)?(\d+\s*g)\s*-\s*Rs(\d+)$`)

// ParseRates extracts every rate entry of the board into a Reading for date.
// It does not check that the tracked instruments are present; see
// models.Reading.Validate.
func ParseRates(html, date string) (*models.Reading, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	block := doc.Find(rateBlockSelector).First()
	if block.Length() == 0 {
		return nil, ErrMarkupNotFound
	}

	reading := models.NewReading(date)
	block.Find("li").Each(func(_ int, li *goquery.Selection) {
		m := rateEntry.FindStringSubmatch(strings.TrimSpace(li.Text()))
		if m == nil {
			return
		}
		key := m[1]
		if m[2] != "" {
			key = key + "/" + m[2]
		}
		reading.Add(key, m[3], m[4])
	})

	return reading, nil
}
