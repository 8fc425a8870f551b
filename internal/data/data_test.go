package data

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"agri-market/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSampleRecordsDerivedFieldsConsistent(t *testing.T) {
	records := SampleRecords()
	require.Len(t, records, 8)

	hundred := decimal.NewFromInt(100)
	for _, r := range records {
		assert.True(t, r.Change.Equal(r.CurrentPrice.Sub(r.PreviousPrice)), "%s change", r.Product)
		want := r.Change.Div(r.PreviousPrice).Mul(hundred).Round(2)
		assert.True(t, r.ChangePercent.Equal(want), "%s percent %s != %s", r.Product, r.ChangePercent, want)
	}

	// the sample's published percents
	assert.Equal(t, "2.94", records[0].ChangePercent.StringFixed(2))
	assert.Equal(t, "-1.20", records[1].ChangePercent.StringFixed(2))
	assert.Equal(t, "-9.52", records[3].ChangePercent.StringFixed(2))
	assert.Equal(t, "2.27", records[6].ChangePercent.StringFixed(2))
}

func TestSampleRecordsReturnsFreshCopy(t *testing.T) {
	a := SampleRecords()
	a[0].Product = "changed"
	assert.Equal(t, "Rice (Basmati)", SampleRecords()[0].Product)
}

func TestPrepareRecords(t *testing.T) {
	p := decimal.RequireFromString
	good := model.MarketRecord{ID: "1", Product: "Rice", Category: "Grains", Market: "Delhi",
		CurrentPrice: p("10"), PreviousPrice: p("8"), Change: p("99")}

	tests := []struct {
		name    string
		records []model.MarketRecord
		wantErr error
	}{
		{"valid", []model.MarketRecord{good}, nil},
		{"empty collection", nil, nil},
		{"missing product", []model.MarketRecord{{ID: "1", Category: "c", Market: "m"}}, ErrInvalidRecord},
		{"negative price", []model.MarketRecord{{ID: "1", Product: "p", Category: "c", Market: "m", CurrentPrice: p("-1")}}, ErrInvalidRecord},
		{"negative previous", []model.MarketRecord{{ID: "1", Product: "p", Category: "c", Market: "m", PreviousPrice: p("-1")}}, ErrInvalidRecord},
		{"duplicate id", []model.MarketRecord{good, good}, ErrDuplicateID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := PrepareRecords(tt.records)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, out, len(tt.records))
			for _, r := range out {
				assert.True(t, r.Consistent())
			}
		})
	}
}

func TestPrepareRecordsNamesMissingField(t *testing.T) {
	_, err := PrepareRecords([]model.MarketRecord{{ID: "1", Product: "p", Category: "c"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "market is required")
}

func TestFileSourceJSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "market.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "updated_at": "2026-10-14T09:00:00Z",
  "records": [
    {"id": "1", "product": "Rice (Basmati)", "category": "Grains", "market": "Delhi",
     "current_price": 45.5, "previous_price": "44.2", "unit": "per kg", "last_updated": "2 hours ago"}
  ]
}`), 0o644))

	yamlPath := filepath.Join(dir, "market.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`records:
  - id: "1"
    product: Rice (Basmati)
    category: Grains
    market: Delhi
    current_price: 45.5
    previous_price: 44.2
    unit: per kg
    last_updated: 2 hours ago
`), 0o644))

	for _, path := range []string{jsonPath, yamlPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			records, err := NewFileSource(path).Load(context.Background())
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, "Delhi", records[0].Market)
			assert.Equal(t, "1.30", records[0].Change.StringFixed(2))
			assert.Equal(t, "2.94", records[0].ChangePercent.StringFixed(2))
		})
	}
}

func TestFileSourceErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileSource(filepath.Join(dir, "missing.json")).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"records": [`), 0o644))
	_, err = NewFileSource(bad).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse dataset file")
}

func TestSaveDatasetFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.yaml")
	require.NoError(t, SaveDatasetFile(path, &DatasetFile{Records: SampleRecords()}))

	records, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 8)
	assert.Equal(t, "Sugarcane", records[7].Product)
	assert.True(t, records[6].CurrentPrice.Equal(decimal.NewFromInt(5850)))
}

func TestRemoteSourceLoadAndCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "secret-key", r.Header.Get("x-api-key"))
		_ = json.NewEncoder(w).Encode(DatasetFile{Records: SampleRecords()})
	}))
	defer srv.Close()

	src := NewRemoteSource(srv.URL+"/market", "secret-key", NewResponseCache(time.Minute), discardLogger())

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 8)

	_, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "second load served from cache")

	src.Invalidate()
	_, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestRemoteSourceErrors(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusForbidden, "UNAUTHORIZED"},
		{http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{http.StatusBadGateway, "REMOTE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "30")
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := NewRemoteSource(srv.URL, "", nil, discardLogger()).Load(context.Background())
			var remoteErr *RemoteError
			require.ErrorAs(t, err, &remoteErr)
			assert.Equal(t, tt.status, remoteErr.StatusCode)
			assert.Equal(t, tt.code, remoteErr.Code)
		})
	}
}

func TestResponseCacheExpiry(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	c := NewResponseCache(time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", &DatasetFile{})
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Prune())
	assert.Equal(t, 0, c.Prune())

	var disabled *ResponseCache = NewResponseCache(0)
	assert.Nil(t, disabled)
	disabled.Set("k", &DatasetFile{})
	_, ok = disabled.Get("k")
	assert.False(t, ok)
}

type flakySource struct {
	calls       int
	failFrom    int
	invalidated bool
}

func (s *flakySource) Name() string { return "flaky" }

func (s *flakySource) Load(ctx context.Context) ([]model.MarketRecord, error) {
	s.calls++
	if s.failFrom > 0 && s.calls >= s.failFrom {
		return nil, errors.New("boom")
	}
	return SampleRecords(), nil
}

func (s *flakySource) Invalidate() { s.invalidated = true }

func TestStoreReload(t *testing.T) {
	src := &flakySource{failFrom: 3}
	store := NewStore(src, discardLogger())

	_, err := store.Current()
	assert.ErrorIs(t, err, ErrNotLoaded)

	first, err := store.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.Version)

	second, err := store.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.Version)
	assert.True(t, src.invalidated)

	_, err = store.Reload(context.Background())
	require.Error(t, err)

	cur, err := store.Current()
	require.NoError(t, err)
	assert.Same(t, second, cur, "failed reload keeps the previous dataset")
}
