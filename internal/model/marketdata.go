package model

import "github.com/shopspring/decimal"

func init() {
	// prices go over the wire as JSON numbers, e.g. "current_price": 45.5
	decimal.MarshalJSONWithoutQuotes = true
}

// percentPlaces is the precision ChangePercent is stored with.
const percentPlaces = 2

var hundred = decimal.NewFromInt(100)

// MarketRecord is one commodity's price quote in one market.
//
// Example (JSON):
//
//	{
//	  "id": "1",
//	  "product": "Rice (Basmati)",
//	  "category": "Grains",
//	  "market": "Delhi",
//	  "current_price": 45.5,
//	  "previous_price": 44.2,
//	  "change": 1.3,
//	  "change_percent": 2.94,
//	  "unit": "per kg",
//	  "last_updated": "2 hours ago"
//	}
//
// Change and ChangePercent are derived from the two prices. Loaders call
// Derive so a stored record never disagrees with its prices.
type MarketRecord struct {
	ID       string `json:"id" yaml:"id" validate:"required"`
	Product  string `json:"product" yaml:"product" validate:"required"`
	Category string `json:"category" yaml:"category" validate:"required"`
	Market   string `json:"market" yaml:"market" validate:"required"`

	CurrentPrice  decimal.Decimal `json:"current_price" yaml:"current_price"`
	PreviousPrice decimal.Decimal `json:"previous_price" yaml:"previous_price"`
	Change        decimal.Decimal `json:"change" yaml:"change"`
	ChangePercent decimal.Decimal `json:"change_percent" yaml:"change_percent"`

	Unit        string `json:"unit" yaml:"unit"`
	LastUpdated string `json:"last_updated" yaml:"last_updated"`
}

// NewMarketRecord builds a record and derives its change fields.
func NewMarketRecord(id, product, category, market string, current, previous decimal.Decimal, unit, lastUpdated string) MarketRecord {
	r := MarketRecord{
		ID:            id,
		Product:       product,
		Category:      category,
		Market:        market,
		CurrentPrice:  current,
		PreviousPrice: previous,
		Unit:          unit,
		LastUpdated:   lastUpdated,
	}
	return r.Derive()
}

// Derive returns a copy of r with Change and ChangePercent recomputed from
// the prices. A zero previous price yields a zero percent.
func (r MarketRecord) Derive() MarketRecord {
	r.Change = ComputeChange(r.CurrentPrice, r.PreviousPrice)
	r.ChangePercent = ComputeChangePercent(r.Change, r.PreviousPrice)
	return r
}

// Consistent reports whether the stored change fields match the prices.
func (r MarketRecord) Consistent() bool {
	d := r.Derive()
	return d.Change.Equal(r.Change) && d.ChangePercent.Equal(r.ChangePercent)
}

// Movement classifies the record by the sign of its change.
func (r MarketRecord) Movement() Movement {
	return MovementFromChange(r.Change)
}

func ComputeChange(current, previous decimal.Decimal) decimal.Decimal {
	return current.Sub(previous)
}

func ComputeChangePercent(change, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return change.Div(previous).Mul(hundred).Round(percentPlaces)
}
