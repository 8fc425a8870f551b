package market

import (
	"sort"

	"agri-market/internal/model"
)

// Movers are the records with the largest relative price moves.
type Movers struct {
	Gainers []model.MarketRecord `json:"gainers"`
	Losers  []model.MarketRecord `json:"losers"`
}

// RankMovers returns up to n gainers sorted by ChangePercent descending and
// up to n losers sorted ascending. Unchanged records are neither. Ties keep
// input order. n <= 0 means no limit.
func RankMovers(records []model.MarketRecord, n int) Movers {
	m := Movers{Gainers: []model.MarketRecord{}, Losers: []model.MarketRecord{}}
	for _, r := range records {
		switch r.Movement() {
		case model.MovementUp:
			m.Gainers = append(m.Gainers, r)
		case model.MovementDown:
			m.Losers = append(m.Losers, r)
		}
	}
	sort.SliceStable(m.Gainers, func(i, j int) bool {
		return m.Gainers[i].ChangePercent.GreaterThan(m.Gainers[j].ChangePercent)
	})
	sort.SliceStable(m.Losers, func(i, j int) bool {
		return m.Losers[i].ChangePercent.LessThan(m.Losers[j].ChangePercent)
	})
	if n > 0 {
		m.Gainers = m.Gainers[:min(n, len(m.Gainers))]
		m.Losers = m.Losers[:min(n, len(m.Losers))]
	}
	return m
}
