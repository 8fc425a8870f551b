package report

import (
	"fmt"
	"io"

	"agri-market/internal/market"
	"agri-market/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	SheetMarket  = "Market Data"
	SheetSummary = "Summary"
)

// WriteMarketXLSX writes a workbook with the records on one sheet and the
// movement summary on another. Prices are stored as numbers.
func WriteMarketXLSX(w io.Writer, records []model.MarketRecord, summary market.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetMarket); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeRow(f, SheetMarket, 1, toCells(csvHeader)); err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetMarket, 1, 1, bold); err != nil {
		return err
	}
	for i, r := range records {
		row := []any{
			r.ID,
			r.Product,
			r.Category,
			r.Market,
			r.CurrentPrice.InexactFloat64(),
			r.PreviousPrice.InexactFloat64(),
			r.Change.InexactFloat64(),
			r.ChangePercent.InexactFloat64(),
			string(r.Movement()),
			r.Unit,
			r.LastUpdated,
		}
		if err := writeRow(f, SheetMarket, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetMarket, "B", "B", 20); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	summaryRows := [][]any{
		{"metric", "value"},
		{"up", summary.UpCount},
		{"down", summary.DownCount},
		{"unchanged", summary.UnchangedCount},
		{"active_markets", summary.ActiveMarketCount},
		{"total", summary.Total()},
	}
	for i, row := range summaryRows {
		if err := writeRow(f, SheetSummary, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(SheetSummary, 1, 1, bold); err != nil {
		return err
	}

	return f.Write(w)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
