package pages

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/gateway"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/hooks"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/views"
)

const searchPrompt = "Enter a search term to find products"

type SearchView struct {
	Term     string              `json:"term"`
	Pending  bool                `json:"pending"`
	Summary  string              `json:"summary,omitempty"`
	Prompt   string              `json:"prompt,omitempty"`
	Products []views.ProductCard `json:"products"`
	List     ListState           `json:"list"`
}

// SearchPage commits typed input as the search term once typing pauses for
// the debounce delay. Each commit starts again at page 1 and issues a single
// fetch; later reads of the same page come from the cache.
type SearchPage struct {
	h     *hooks.Hooks
	delay time.Duration

	mu      sync.Mutex
	input   string
	seq     uint64
	term    string
	pag     Pagination
	timer   *time.Timer
	pending bool
}

func NewSearchPage(h *hooks.Hooks) *SearchPage {
	t := h.Tuning()
	return &SearchPage{h: h, delay: t.SearchDebounce, pag: NewPagination(t.PageSize)}
}

// Input records the current text of the search box and restarts the
// debounce timer.
func (p *SearchPage) Input(ctx context.Context, text string) {
	ctx = context.WithoutCancel(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.input = text
	p.seq++
	p.pending = true
	if p.timer != nil {
		p.timer.Stop()
	}
	seq := p.seq
	p.timer = time.AfterFunc(p.delay, func() { p.commit(ctx, seq) })
}

// Flush commits pending input without waiting for the delay.
func (p *SearchPage) Flush(ctx context.Context) {
	p.mu.Lock()
	if !p.pending {
		p.mu.Unlock()
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	seq := p.seq
	p.mu.Unlock()
	p.commit(ctx, seq)
}

func (p *SearchPage) commit(ctx context.Context, seq uint64) {
	p.mu.Lock()
	if seq != p.seq || !p.pending {
		// Superseded by newer input, or already committed.
		p.mu.Unlock()
		return
	}
	term := strings.TrimSpace(p.input)
	p.pending = false
	p.timer = nil
	p.term = term
	p.pag.Reset()
	params := p.params()
	p.mu.Unlock()

	l := logging.FromContext(ctx).With("page", "search")
	l.Debug("search_committed", "term", term)
	if term == "" {
		return
	}
	if _, err := p.h.Products(ctx, params); err != nil {
		l.Warn("search_prefetch", "status", "failed", "term", term, "error", err)
	}
}

// params is called with mu held.
func (p *SearchPage) params() gateway.ListParams {
	return gateway.ListParams{Page: p.pag.Page, Limit: p.pag.Limit, Search: p.term}
}

func (p *SearchPage) Term() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.term
}

func (p *SearchPage) Results(ctx context.Context) (SearchView, error) {
	p.mu.Lock()
	term, pending, pag, params := p.term, p.pending, p.pag, p.params()
	p.mu.Unlock()

	v := SearchView{Term: term, Pending: pending, Products: []views.ProductCard{}}
	if term == "" {
		v.Prompt = searchPrompt
		v.List = NewListState(pag, 0)
		return v, nil
	}

	list, err := p.h.Products(ctx, params)
	if err != nil {
		return SearchView{}, err
	}
	v.Products = views.NewProductCards(list.Data)
	v.List = NewListState(pag, len(list.Data))
	v.Summary = fmt.Sprintf("Found %s for %q", views.Plural(len(list.Data), "result", "results"), term)
	return v, nil
}

func (p *SearchPage) Next(ctx context.Context) (SearchView, error) {
	p.mu.Lock()
	p.pag.Next()
	p.mu.Unlock()
	return p.Results(ctx)
}

func (p *SearchPage) Prev(ctx context.Context) (SearchView, error) {
	p.mu.Lock()
	p.pag.Prev()
	p.mu.Unlock()
	return p.Results(ctx)
}

// Close stops a pending debounce timer.
func (p *SearchPage) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
