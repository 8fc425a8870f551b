package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewMarketRecordDerivesChange(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		previous string
		change   string
		percent  string
		movement Movement
	}{
		{"up", "45.5", "44.2", "1.3", "2.94", MovementUp},
		{"down", "28.75", "29.1", "-0.35", "-1.2", MovementDown},
		{"flat", "10", "10", "0", "0", MovementUnchanged},
		{"zero previous", "5", "0", "5", "0", MovementUp},
		{"rounds half up", "1.00005", "1", "0.00005", "0.01", MovementUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewMarketRecord("x", "p", "c", "m", dec(tt.current), dec(tt.previous), "per kg", "now")
			assert.True(t, r.Change.Equal(dec(tt.change)), "change %s", r.Change)
			assert.True(t, r.ChangePercent.Equal(dec(tt.percent)), "percent %s", r.ChangePercent)
			assert.Equal(t, tt.movement, r.Movement())
			assert.True(t, r.Consistent())
		})
	}
}

func TestConsistentDetectsTamperedChange(t *testing.T) {
	r := NewMarketRecord("1", "Wheat", "Grains", "Mumbai", dec("28.75"), dec("29.1"), "per kg", "1 hour ago")
	r.Change = dec("0.35")
	assert.False(t, r.Consistent())

	fixed := r.Derive()
	require.True(t, fixed.Consistent())
	assert.True(t, fixed.Change.Equal(dec("-0.35")))
}

func TestMovementFromChange(t *testing.T) {
	assert.Equal(t, MovementUp, MovementFromChange(dec("0.01")))
	assert.Equal(t, MovementDown, MovementFromChange(dec("-0.01")))
	assert.Equal(t, MovementUnchanged, MovementFromChange(decimal.Zero))
}

func TestFilterCriteriaNormalized(t *testing.T) {
	c := FilterCriteria{SearchTerm: "Rice"}.Normalized()
	assert.Equal(t, "Rice", c.SearchTerm)
	assert.Equal(t, Wildcard, c.Category)
	assert.Equal(t, Wildcard, c.Market)

	assert.True(t, FilterCriteria{}.IsWildcard())
	assert.True(t, AllCriteria().IsWildcard())
	assert.False(t, FilterCriteria{Market: "Delhi"}.IsWildcard())
}

func TestMarketRecordJSONPricesAreNumbers(t *testing.T) {
	r := NewMarketRecord("1", "Rice (Basmati)", "Grains", "Delhi", dec("45.5"), dec("44.2"), "per kg", "2 hours ago")

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"current_price":45.5`)
	assert.Contains(t, string(raw), `"change_percent":2.94`)

	var back MarketRecord
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.CurrentPrice.Equal(r.CurrentPrice))
	assert.True(t, back.Consistent())
}
