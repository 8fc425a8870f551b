package market

import (
	"slices"
	"sync"

	"agri-market/internal/model"
)

// Catalog memoizes the options and summary of one dataset version. Filter
// changes never invalidate it; only a new dataset version does.
type Catalog struct {
	mu      sync.Mutex
	valid   bool
	version uint64
	options FilterOptions
	summary Summary
}

// Derived returns the options and summary for records, recomputing them only
// when version differs from the last call.
func (c *Catalog) Derived(version uint64, records []model.MarketRecord) (FilterOptions, Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || c.version != version {
		c.options = Options(records)
		c.summary = Summarize(records)
		c.version = version
		c.valid = true
	}
	return FilterOptions{
		Categories: slices.Clone(c.options.Categories),
		Markets:    slices.Clone(c.options.Markets),
	}, c.summary
}

// Version reports the dataset version currently memoized.
func (c *Catalog) Version() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version, c.valid
}
