// Package workspace holds the server-side state of one browser session: its
// auth store, token storage and the three resource pages.
package workspace

import (
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/aimingmed/sctracker-console/internal/auth"
	"github.com/aimingmed/sctracker-console/internal/inventory"
	"github.com/aimingmed/sctracker-console/internal/products"
	"github.com/aimingmed/sctracker-console/internal/requests"
)

// Workspace is touched by one UI event at a time. Callers hold Lock for the
// duration of an event.
type Workspace struct {
	ID string

	mu       sync.Mutex
	seenMu   sync.Mutex
	lastSeen time.Time
	closed   bool

	Auth      *auth.Store
	Products  *products.Page
	Inventory *inventory.Page
	Requests  *requests.Page
}

func (w *Workspace) Lock()   { w.mu.Lock() }
func (w *Workspace) Unlock() { w.mu.Unlock() }

// LoadAll refreshes every page. One page failing does not stop the others.
func (w *Workspace) LoadAll(ctx context.Context) error {
	return multierr.Combine(
		w.Products.Load(ctx),
		w.Inventory.Load(ctx),
		w.Requests.Load(ctx),
	)
}

// Logout clears the session token and resets the pages so the next user
// starts from an empty view.
func (w *Workspace) Logout(ctx context.Context) error {
	err := w.Auth.Logout(ctx)
	w.Products.List.Clear()
	w.Inventory.List.Clear()
	w.Requests.List.Clear()
	w.Products.Flow.Close()
	w.Inventory.Flow.Close()
	w.Requests.Flow.Close()
	return err
}

// Close discards in-flight results of every page. The persisted token stays
// so a later request with the same cookie resumes the session.
func (w *Workspace) Close() {
	w.seenMu.Lock()
	w.closed = true
	w.seenMu.Unlock()
	w.Products.Close()
	w.Inventory.Close()
	w.Requests.Close()
}

func (w *Workspace) Closed() bool {
	w.seenMu.Lock()
	defer w.seenMu.Unlock()
	return w.closed
}

func (w *Workspace) touch(now time.Time) {
	w.seenMu.Lock()
	w.lastSeen = now
	w.seenMu.Unlock()
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	w.seenMu.Lock()
	defer w.seenMu.Unlock()
	return now.Sub(w.lastSeen)
}
