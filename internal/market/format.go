package market

import (
	"fmt"

	"agri-market/internal/model"

	"github.com/shopspring/decimal"
)

const currencySymbol = "₹"

// Card is a record prepared for the price grid.
type Card struct {
	ID       string `json:"id"`
	Product  string `json:"product"`
	Category string `json:"category"`
	Market   string `json:"market"`
	Price    string `json:"price"`
	Unit     string `json:"unit"`
	Change   string `json:"change"`
	Trend    string `json:"trend"` // "up" or "down"
	Updated  string `json:"updated"`
}

// FormatPrice renders an amount with the currency symbol and two decimals.
func FormatPrice(d decimal.Decimal) string {
	return currencySymbol + d.StringFixed(2)
}

// FormatChange renders "+₹1.30 (2.94%)". Negative changes carry their sign
// after the currency symbol: "₹-0.35 (-1.20%)".
func FormatChange(r model.MarketRecord) string {
	sign := ""
	if !r.Change.IsNegative() {
		sign = "+"
	}
	return fmt.Sprintf("%s%s (%s%%)", sign, FormatPrice(r.Change), r.ChangePercent.StringFixed(2))
}

// Trend is "up" for a non-negative change, "down" otherwise.
func Trend(r model.MarketRecord) string {
	if r.Change.IsNegative() {
		return "down"
	}
	return "up"
}

func NewCard(r model.MarketRecord) Card {
	return Card{
		ID:       r.ID,
		Product:  r.Product,
		Category: r.Category,
		Market:   r.Market,
		Price:    FormatPrice(r.CurrentPrice),
		Unit:     r.Unit,
		Change:   FormatChange(r),
		Trend:    Trend(r),
		Updated:  "Updated " + r.LastUpdated,
	}
}

// Cards formats every record, preserving order.
func Cards(records []model.MarketRecord) []Card {
	out := make([]Card, 0, len(records))
	for _, r := range records {
		out = append(out, NewCard(r))
	}
	return out
}

// FormatRow renders a record as one fixed-width text line.
// Product | Category | Market | Price | Change | Unit
func FormatRow(r model.MarketRecord) string {
	return fmt.Sprintf("%-16s | %-10s | %-10s | %10s | %18s | %s",
		r.Product, r.Category, r.Market, FormatPrice(r.CurrentPrice), FormatChange(r), r.Unit)
}
