package yahoo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChart(t *testing.T) {
	body := []byte(`{
		"chart": {
			"result": [{
				"timestamp": [1714521600, 1714608000, 1714694400],
				"indicators": {
					"quote": [{
						"close": [100.5, null, 102.25],
						"volume": [12000, null, 15000]
					}]
				}
			}],
			"error": null
		}
	}`)

	bars, err := parseChart(body)
	require.NoError(t, err)

	// The null close is dropped.
	require.Len(t, bars, 2)

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), bars[0].Date)
	assert.InDelta(t, 100.5, bars[0].Close, 1e-12)
	assert.Equal(t, int64(12000), bars[0].Volume)

	assert.InDelta(t, 102.25, bars[1].Close, 1e-12)
	assert.True(t, bars[0].Date.Before(bars[1].Date))
}

func TestParseChart_APIError(t *testing.T) {
	body := []byte(`{
		"chart": {
			"result": null,
			"error": {"code": "Not Found", "description": "No data found"}
		}
	}`)

	_, err := parseChart(body)
	assert.ErrorContains(t, err, "Not Found")
}

func TestParseChart_EmptyResult(t *testing.T) {
	_, err := parseChart([]byte(`{"chart": {"result": []}}`))
	assert.Error(t, err)

	_, err = parseChart([]byte(`not json`))
	assert.Error(t, err)
}
