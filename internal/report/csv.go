// Package report writes market data exports.
package report

import (
	"encoding/csv"
	"io"

	"agri-market/internal/model"

	"github.com/shopspring/decimal"
)

var csvHeader = []string{
	"id",
	"product",
	"category",
	"market",
	"current_price",
	"previous_price",
	"change",
	"change_percent",
	"movement",
	"unit",
	"last_updated",
}

// WriteMarketCSV writes one row per record in input order, after a header.
func WriteMarketCSV(w io.Writer, records []model.MarketRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Product,
			r.Category,
			r.Market,
			fmtPrice(r.CurrentPrice),
			fmtPrice(r.PreviousPrice),
			fmtPrice(r.Change),
			fmtPrice(r.ChangePercent),
			string(r.Movement()),
			r.Unit,
			r.LastUpdated,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func fmtPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}
