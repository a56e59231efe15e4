// Package liststate holds one page's copy of a remote collection and the
// filtered view derived from it.
package liststate

import (
	"context"
	"strings"
	"sync"
)

// Fetcher loads the full collection from the API.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Matcher reports whether item matches a non-empty, lower-cased search term.
type Matcher[T any] func(item T, term string) bool

// Options configures a Controller.
type Options[T any] struct {
	Fetch Fetcher[T]
	Match Matcher[T]
	// CategoryOf assigns each item to a tab. Nil disables tab filtering.
	CategoryOf      func(item T) string
	DefaultCategory string
}

// Controller is the local list state of a page. The view is always recomputed
// from (items, filter, category) and never edited on its own.
type Controller[T any] struct {
	mu              sync.RWMutex
	fetch           Fetcher[T]
	match           Matcher[T]
	categoryOf      func(T) string
	defaultCategory string

	items    []T
	filter   string
	category string
	inflight int
	err      error
	closed   bool
	loaded   bool
}

func New[T any](opts Options[T]) *Controller[T] {
	return &Controller[T]{
		fetch:           opts.Fetch,
		match:           opts.Match,
		categoryOf:      opts.CategoryOf,
		defaultCategory: opts.DefaultCategory,
		category:        opts.DefaultCategory,
	}
}

// Load replaces the collection with a fresh fetch. On failure the previous
// collection is kept and the error is recorded. A result that arrives after
// Close is discarded.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.inflight++
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if c.closed {
		return nil
	}
	if err != nil {
		c.err = err
		return err
	}
	c.items = items
	c.err = nil
	c.loaded = true
	return nil
}

// SetFilter changes the search term. The view follows immediately.
func (c *Controller[T]) SetFilter(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = term
}

// SetCategory narrows the view to one tab. "" shows every tab.
func (c *Controller[T]) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.category = category
}

// Reset restores the default search term and tab.
func (c *Controller[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = ""
	c.category = c.defaultCategory
}

// Clear drops the collection and resets the filter and tab, as after sign-out.
func (c *Controller[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.err = nil
	c.loaded = false
	c.filter = ""
	c.category = c.defaultCategory
}

// View returns the items that pass the current search term and tab, in collection order.
func (c *Controller[T]) View() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return project(c.items, c.filter, c.category, c.match, c.categoryOf)
}

// Items returns a copy of the whole collection.
func (c *Controller[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

// Find returns the first item of the collection satisfying pred.
func (c *Controller[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Controller[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

// Loaded reports whether at least one load has succeeded.
func (c *Controller[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Controller[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Controller[T]) Filter() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

func (c *Controller[T]) Category() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.category
}

// Close marks the page as gone. Later loads are no-ops.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller[T]) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func project[T any](items []T, filter, category string, match Matcher[T], categoryOf func(T) string) []T {
	term := strings.ToLower(filter)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if category != "" && categoryOf != nil && categoryOf(item) != category {
			continue
		}
		if term != "" && match != nil && !match(item, term) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// ContainsFold reports whether any field contains term, ignoring case.
// term must already be lower-cased.
func ContainsFold(term string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
