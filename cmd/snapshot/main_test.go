package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agri-market/internal/data"
	"agri-market/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id, product string, price int64) model.MarketRecord {
	p := decimal.NewFromInt(price)
	return model.NewMarketRecord(id, product, "Grains", "Delhi", p, p, "per kg", "now")
}

func TestMergeRecords(t *testing.T) {
	seed := []model.MarketRecord{rec("1", "Rice", 40), rec("2", "Wheat", 28)}
	fresh := []model.MarketRecord{rec("3", "Millet", 30), rec("1", "Rice", 45)}

	got := mergeRecords(seed, fresh)
	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].ID)
	assert.True(t, got[0].CurrentPrice.Equal(decimal.NewFromInt(45)), "fresh wins")
	assert.Equal(t, "2", got[1].ID)
	assert.Equal(t, "3", got[2].ID)
}

func TestMergeRecordsWithoutSeed(t *testing.T) {
	fresh := data.SampleRecords()
	assert.Equal(t, fresh, mergeRecords(nil, fresh))
}

func TestFetch(t *testing.T) {
	_, err := fetch(context.Background(), "", false)
	assert.Error(t, err)

	records, err := fetch(context.Background(), "", true)
	require.NoError(t, err)
	assert.Len(t, records, 8)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(data.DatasetFile{Records: data.SampleRecords()[:3]})
	}))
	defer srv.Close()

	records, err = fetch(context.Background(), srv.URL, false)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
