package reporter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryText(t *testing.T) {
	text := summaryText(3, 42, 5, 37)

	assert.Contains(t, text, "Sites scraped: 3")
	assert.Contains(t, text, "Records collected: 42")
	assert.Contains(t, text, "Added: 5")
	assert.Contains(t, text, "Updated: 37")
}

func TestErrorText(t *testing.T) {
	text := errorText(errors.New("no jobs were scraped from any site"))

	assert.Contains(t, text, "Scrape error")
	assert.Contains(t, text, "no jobs were scraped from any site")
}
