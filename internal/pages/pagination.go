// Package pages composes hooks and views into the storefront's pages:
// listings, product detail, cart, search, profile and the auth forms.
package pages

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func NewPagination(limit int) Pagination {
	return Pagination{Page: 1, Limit: limit}
}

// At returns p moved to page, never below 1.
func (p Pagination) At(page int) Pagination {
	if page < 1 {
		page = 1
	}
	p.Page = page
	return p
}

func (p *Pagination) Next() { p.Page++ }

func (p *Pagination) Prev() {
	if p.Page > 1 {
		p.Page--
	}
}

func (p *Pagination) Reset() { p.Page = 1 }

// ListState describes a fetched page of Count items. A full page is taken to
// mean there may be another one.
type ListState struct {
	Page      int  `json:"page"`
	Limit     int  `json:"limit"`
	Count     int  `json:"count"`
	IsEmpty   bool `json:"is_empty"`
	HasPrev   bool `json:"has_prev"`
	HasNext   bool `json:"has_next"`
	ShowPager bool `json:"show_pager"`
}

func NewListState(p Pagination, count int) ListState {
	return ListState{
		Page:      p.Page,
		Limit:     p.Limit,
		Count:     count,
		IsEmpty:   count == 0,
		HasPrev:   p.Page > 1,
		HasNext:   count == p.Limit,
		ShowPager: count > 0 && count >= p.Limit,
	}
}
