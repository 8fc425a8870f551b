package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"agri-market/internal/data"
	"agri-market/internal/demographics"
	"agri-market/internal/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, run(args, &out))
	return out.String()
}

func TestUsage(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, run(nil, &out), errUsage)
	assert.ErrorIs(t, run([]string{"bogus"}, &out), errUsage)
}

func TestList(t *testing.T) {
	out := runCLI(t, "list", "--category", "Grains")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Rice (Basmati)")
	assert.Contains(t, lines[0], "+₹1.30 (2.94%)")
	assert.Contains(t, lines[1], "Wheat")
	assert.Equal(t, "2 of 8 records", lines[2])
}

func TestListNoMatches(t *testing.T) {
	out := runCLI(t, "list", "--search", "durian")
	assert.Equal(t, "No products found matching your criteria\n", out)
}

func TestSummary(t *testing.T) {
	out := runCLI(t, "summary")
	assert.Contains(t, out, "Prices Up:      4")
	assert.Contains(t, out, "Prices Down:    4")
	assert.Contains(t, out, "Unchanged:      0")
	assert.Contains(t, out, "Active Markets: 7")
}

func TestOptions(t *testing.T) {
	out := runCLI(t, "options")
	assert.Contains(t, out, "All Categories")
	assert.Contains(t, out, "All Markets")
	assert.Contains(t, out, "Cash Crops")
}

func TestCardsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.yaml")
	records := data.SampleRecords()[:2]
	require.NoError(t, data.SaveDatasetFile(path, &data.DatasetFile{Records: records}))

	out := runCLI(t, "cards", "--data", path, "--search", "wheat")
	var cards []market.Card
	require.NoError(t, json.Unmarshal([]byte(out), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "down", cards[0].Trend)
}

func TestExport(t *testing.T) {
	out := runCLI(t, "export", "--market", "Delhi")
	assert.Equal(t, 3, strings.Count(out, "\n"), "header plus two rows")

	path := filepath.Join(t.TempDir(), "market.xlsx")
	msg := runCLI(t, "export", "--format", "xlsx", "--out", path)
	assert.Contains(t, msg, "Wrote 8 rows")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Market Data")
	require.NoError(t, err)
	assert.Len(t, rows, 9)
}

func TestExportErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"export", "--format", "pdf"}, &out))
	assert.Error(t, run([]string{"export", "--format", "xlsx"}, &out))
	assert.Error(t, run([]string{"list", "--data", filepath.Join(os.TempDir(), "missing-agri.json")}, &out))
}

func TestDemographics(t *testing.T) {
	out := runCLI(t, "demographics", "--timeframe", "month", "--delay", "10ms")
	var payload demographics.Payload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.False(t, payload.View.Loading)
	assert.Equal(t, "month", payload.View.Selection.Timeframe)

	var buf bytes.Buffer
	assert.ErrorIs(t, run([]string{"demographics", "--crop", "cocoa", "--delay", "10ms"}, &buf), demographics.ErrInvalidSelection)
}

func TestMovers(t *testing.T) {
	out := runCLI(t, "movers", "--n", "1")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Top gainers:", lines[0])
	assert.Contains(t, lines[1], "Tomatoes")
	assert.Equal(t, "Top losers:", lines[2])
	assert.Contains(t, lines[3], "Onions")
}
