package salary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scalePage = `<html><body><table>
<tr><th>Pick</th><th>Year 1</th><th>Year 2</th><th>Year 3</th><th>Year 4</th></tr>
<tr><td>1</td><td>$12,569,100</td><td>$13,197,600</td><td>$13,826,000</td><td>$17,473,800</td></tr>
<tr><td>31</td><td>$2,000,000</td><td>$2,100,000</td><td>$2,205,000</td><td>-</td></tr>
<tr><td>not a pick</td><td>x</td><td>x</td><td>x</td><td>x</td></tr>
</table></body></html>`

func TestFetchScaleParsesTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scalePage))
	}))
	defer server.Close()

	scale, err := FetchScale(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, scale, 2)

	got, ok := scale.Lookup(1)
	require.True(t, ok)
	assert.InDelta(t, (12_569_100+13_197_600+13_826_000+17_473_800)/4.0, got, 0.01)

	// Dash in year 4 counts as zero.
	got, ok = scale.Lookup(31)
	require.True(t, ok)
	assert.InDelta(t, (2_000_000+2_100_000+2_205_000)/4.0, got, 0.01)
}

func TestFetchScaleEmptyTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>no table here</p></body></html>"))
	}))
	defer server.Close()

	_, err := FetchScale(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestFetchScaleHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := FetchScale(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestParseDollars(t *testing.T) {
	got, err := parseDollars(" $1,234,567 ")
	require.NoError(t, err)
	assert.Equal(t, 1_234_567.0, got)

	got, err = parseDollars("-")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = parseDollars("n/a")
	assert.Error(t, err)
}
