package nse

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConstituents(t *testing.T) {
	html := `
	<html><body>
	<table>
		<thead><tr><th>Symbol</th><th>Company</th></tr></thead>
		<tbody>
			<tr><td>RELIANCE</td><td>Reliance Industries</td></tr>
			<tr><td> TCS </td><td>Tata Consultancy Services</td></tr>
			<tr><td>INFY</td><td>Infosys</td></tr>
			<tr><td>RELIANCE</td><td>duplicate row</td></tr>
			<tr><td></td><td>blank symbol</td></tr>
		</tbody>
	</table>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	symbols := parseConstituents(doc)

	// Deduplicated, trimmed and sorted.
	assert.Equal(t, []string{"INFY", "RELIANCE", "TCS"}, symbols)
}

func TestParseConstituents_NoTable(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)

	assert.Empty(t, parseConstituents(doc))
}
