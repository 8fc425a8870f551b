package demographics

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"agri-market/internal/loading"
)

// View is the page state shown to the client. It is never modified in
// place; every change publishes a new View.
type View struct {
	Selection Selection      `json:"selection"`
	Loading   bool           `json:"loading"`
	Ticket    loading.Ticket `json:"ticket"`
}

// Payload is everything the Demographics page renders.
type Payload struct {
	View     View             `json:"view"`
	Stats    []StatCard       `json:"stats"`
	Charts   []Chart          `json:"charts"`
	Insights []Insight        `json:"insights"`
	Options  SelectionOptions `json:"options"`
}

// Page owns the current selection and its loading indicator.
type Page struct {
	tracker *loading.Tracker
	logger  *slog.Logger

	mu   sync.Mutex // serializes selection changes
	view atomic.Pointer[View]
}

// NewPage opens the page on the default selection, which starts loading
// just like any later change.
func NewPage(delay time.Duration, logger *slog.Logger) *Page {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Page{
		tracker: loading.New(delay),
		logger:  logger.With(slog.String("component", "demographics.page")),
	}
	p.tracker.OnClear(p.settle)
	p.apply(DefaultSelection())
	return p
}

// View returns the current view.
func (p *Page) View() View {
	return *p.view.Load()
}

// Select validates and applies a selection. Empty fields keep their
// defaults. The previous pending load, if any, is superseded.
func (p *Page) Select(ctx context.Context, sel Selection) (View, error) {
	sel = sel.WithDefaults()
	if err := sel.Validate(); err != nil {
		return p.View(), err
	}
	v := p.apply(sel)
	p.logger.InfoContext(ctx, "selection changed",
		slog.String("region", sel.Region),
		slog.String("crop", sel.Crop),
		slog.String("timeframe", sel.Timeframe),
		slog.Uint64("ticket", uint64(v.Ticket)))
	return v, nil
}

func (p *Page) apply(sel Selection) View {
	p.mu.Lock()
	defer p.mu.Unlock()

	ticket := p.tracker.Begin()
	v := &View{Selection: sel, Loading: true, Ticket: ticket}
	p.view.Store(v)
	return *v
}

// settle publishes the loaded view for ticket, unless a newer selection
// took over in the meantime.
func (p *Page) settle(ticket loading.Ticket) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cur := p.view.Load()
	if cur.Ticket != ticket {
		return
	}
	p.view.Store(&View{Selection: cur.Selection, Loading: false, Ticket: ticket})
}

// Payload assembles the page content for the current view.
func (p *Page) Payload() Payload {
	v := p.View()
	return Payload{
		View:     v,
		Stats:    StatCards(),
		Charts:   Charts(v.Selection),
		Insights: Insights(),
		Options:  Options(),
	}
}

// WaitLoaded blocks until the current selection has finished loading.
func (p *Page) WaitLoaded(ctx context.Context) (View, error) {
	err := p.tracker.Wait(ctx)
	return p.View(), err
}

// Close stops any pending load timer and publishes the current selection
// as loaded, so readers after Close never see a flag that cannot clear.
func (p *Page) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cur := p.view.Load(); cur.Loading {
		p.view.Store(&View{Selection: cur.Selection, Loading: false, Ticket: cur.Ticket})
	}
	p.tracker.Cancel()
}
