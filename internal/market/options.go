package market

import "agri-market/internal/model"

// FilterOptions are the values offered by the category and market filter
// controls. Each list starts with the wildcard followed by distinct values
// in first-seen order.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Markets    []string `json:"markets"`
}

// Options extracts the distinct categories and markets of records.
func Options(records []model.MarketRecord) FilterOptions {
	return FilterOptions{
		Categories: distinct(records, func(r model.MarketRecord) string { return r.Category }),
		Markets:    distinct(records, func(r model.MarketRecord) string { return r.Market }),
	}
}

// distinct returns the wildcard plus unique values of key. A record whose
// value is itself the wildcard does not add a second one.
func distinct(records []model.MarketRecord, key func(model.MarketRecord) string) []string {
	seen := map[string]struct{}{model.Wildcard: {}}
	out := []string{model.Wildcard}
	for _, r := range records {
		v := key(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// OptionLabel is the display label of a filter option.
func OptionLabel(dimension, value string) string {
	if value != model.Wildcard {
		return value
	}
	switch dimension {
	case "category":
		return "All Categories"
	case "market":
		return "All Markets"
	default:
		return "All"
	}
}
