package market

import "agri-market/internal/model"

// Summary counts price movements over a whole collection. It does not
// depend on the active filter: the Market Summary panel always describes
// the full dataset.
type Summary struct {
	UpCount           int `json:"up_count"`
	DownCount         int `json:"down_count"`
	UnchangedCount    int `json:"unchanged_count"`
	ActiveMarketCount int `json:"active_market_count"`
}

// Total is the number of records the summary was computed over.
func (s Summary) Total() int {
	return s.UpCount + s.DownCount + s.UnchangedCount
}

// Summarize computes the movement counts and the number of distinct markets.
// Unchanged means an exactly zero change; prices are exact decimals so no
// tolerance is applied.
func Summarize(records []model.MarketRecord) Summary {
	var s Summary
	markets := make(map[string]struct{})
	for _, r := range records {
		switch r.Movement() {
		case model.MovementUp:
			s.UpCount++
		case model.MovementDown:
			s.DownCount++
		default:
			s.UnchangedCount++
		}
		if r.Market != model.Wildcard {
			markets[r.Market] = struct{}{}
		}
	}
	s.ActiveMarketCount = len(markets)
	return s
}
