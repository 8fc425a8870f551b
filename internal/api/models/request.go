package models

import "agri-market/internal/model"

// MarketQuery is the query string of the market endpoints. Empty
// category or market means the wildcard.
type MarketQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Market   string `form:"market"`
}

// Criteria converts the query into normalized filter criteria.
func (q MarketQuery) Criteria() model.FilterCriteria {
	return model.FilterCriteria{
		SearchTerm: q.Search,
		Category:   q.Category,
		Market:     q.Market,
	}.Normalized()
}

// ExportQuery adds the file format to a market query.
type ExportQuery struct {
	MarketQuery
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx"` // default: csv
}

// SelectionRequest is the body of PUT /demographics/selection. Omitted
// fields keep their defaults.
type SelectionRequest struct {
	Region    string `json:"region"`
	Crop      string `json:"crop"`
	Timeframe string `json:"timeframe"`
}

// ReportRequest is the optional body of POST /demographics/report.
type ReportRequest struct {
	Note string `json:"note,omitempty" binding:"max=200"`
}
