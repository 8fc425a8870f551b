package model

// Wildcard is the filter value meaning "no constraint" for a dimension.
const Wildcard = "all"

// FilterCriteria is the conjunctive set of active search/category/market
// constraints. It is a value: callers replace it wholesale, the filter
// engine only reads it.
type FilterCriteria struct {
	SearchTerm string `json:"search" form:"search"`
	Category   string `json:"category" form:"category"`
	Market     string `json:"market" form:"market"`
}

// AllCriteria matches every record.
func AllCriteria() FilterCriteria {
	return FilterCriteria{Category: Wildcard, Market: Wildcard}
}

// Normalized maps empty dimensions to the wildcard. The search term is left
// as given; matching is case-insensitive.
func (c FilterCriteria) Normalized() FilterCriteria {
	if c.Category == "" {
		c.Category = Wildcard
	}
	if c.Market == "" {
		c.Market = Wildcard
	}
	return c
}

// IsWildcard reports whether c imposes no constraint at all.
func (c FilterCriteria) IsWildcard() bool {
	n := c.Normalized()
	return n.SearchTerm == "" && n.Category == Wildcard && n.Market == Wildcard
}
