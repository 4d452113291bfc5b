package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning holds the paging, debounce and cache-lifetime knobs.
type Tuning struct {
	PageSize          int           `yaml:"page_size"`
	CategoryPageSize  int           `yaml:"category_page_size"`
	SearchDebounce    time.Duration `yaml:"search_debounce"`
	ProductStaleTime  time.Duration `yaml:"product_stale_time"`
	CategoryStaleTime time.Duration `yaml:"category_stale_time"`
	AccountStaleTime  time.Duration `yaml:"account_stale_time"`
}

func DefaultTuning() Tuning {
	return Tuning{
		PageSize:          12,
		CategoryPageSize:  100,
		SearchDebounce:    300 * time.Millisecond,
		ProductStaleTime:  5 * time.Minute,
		CategoryStaleTime: 10 * time.Minute,
		AccountStaleTime:  5 * time.Minute,
	}
}

// LoadFile overlays non-zero values from a YAML file onto t.
func (t *Tuning) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading tuning file: %w", err)
	}

	var loaded Tuning
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing YAML tuning: %w", err)
	}

	t.merge(loaded)
	return nil
}

func (t *Tuning) merge(o Tuning) {
	if o.PageSize > 0 {
		t.PageSize = o.PageSize
	}
	if o.CategoryPageSize > 0 {
		t.CategoryPageSize = o.CategoryPageSize
	}
	if o.SearchDebounce > 0 {
		t.SearchDebounce = o.SearchDebounce
	}
	if o.ProductStaleTime > 0 {
		t.ProductStaleTime = o.ProductStaleTime
	}
	if o.CategoryStaleTime > 0 {
		t.CategoryStaleTime = o.CategoryStaleTime
	}
	if o.AccountStaleTime > 0 {
		t.AccountStaleTime = o.AccountStaleTime
	}
}
