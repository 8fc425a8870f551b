// Package market holds the pure computations behind the Market Data page:
// filtering records by the active criteria, extracting filter options,
// summarizing price movements and formatting records for display.
//
// Nothing here mutates its inputs. Callers own the record slice and the
// criteria value.
package market

import (
	"strings"

	"agri-market/internal/model"
)

// Filter returns the records satisfying every active criterion, in input
// order. An empty criterion or the wildcard imposes no constraint. No
// match yields an empty, non-nil slice.
func Filter(records []model.MarketRecord, criteria model.FilterCriteria) []model.MarketRecord {
	m := newMatcher(criteria)
	out := make([]model.MarketRecord, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record satisfies the criteria.
func Matches(r model.MarketRecord, criteria model.FilterCriteria) bool {
	return newMatcher(criteria).match(r)
}

type matcher struct {
	search   string
	category string
	market   string
}

func newMatcher(criteria model.FilterCriteria) matcher {
	c := criteria.Normalized()
	return matcher{
		search:   strings.ToLower(c.SearchTerm),
		category: c.Category,
		market:   c.Market,
	}
}

func (m matcher) match(r model.MarketRecord) bool {
	if m.search != "" && !strings.Contains(strings.ToLower(r.Product), m.search) {
		return false
	}
	if m.category != model.Wildcard && r.Category != m.category {
		return false
	}
	if m.market != model.Wildcard && r.Market != m.market {
		return false
	}
	return true
}
