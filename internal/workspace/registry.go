package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aimingmed/sctracker-console/internal/apiclient"
	"github.com/aimingmed/sctracker-console/internal/auth"
	"github.com/aimingmed/sctracker-console/internal/inventory"
	"github.com/aimingmed/sctracker-console/internal/products"
	"github.com/aimingmed/sctracker-console/internal/requests"
	"github.com/aimingmed/sctracker-console/pkg/auth/session"
	"github.com/aimingmed/sctracker-console/pkg/config"
	"github.com/aimingmed/sctracker-console/pkg/logger"
	"github.com/aimingmed/sctracker-console/pkg/metrics"
	"github.com/aimingmed/sctracker-console/pkg/storage"
)

const defaultSweepInterval = 5 * time.Minute

// RegistryParams configure the workspace registry.
type RegistryParams struct {
	Client        *apiclient.Client
	Storage       storage.Factory
	TokenKey      string
	Permissions   config.PermissionsConfig
	IdleTTL       time.Duration
	SweepInterval time.Duration
	Metrics       *metrics.WorkspaceMetrics
	Logger        *logger.Logger
	Now           func() time.Time
}

// Registry maps workspace ids from the browser cookie to live workspaces.
type Registry struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace

	client   *apiclient.Client
	storage  storage.Factory
	tokenKey string
	perms    config.PermissionsConfig
	idleTTL  time.Duration
	interval time.Duration
	metrics  *metrics.WorkspaceMetrics
	logg     *logger.Logger
	now      func() time.Time
}

func NewRegistry(params RegistryParams) (*Registry, error) {
	if params.Client == nil {
		return nil, fmt.Errorf("api client required")
	}
	if params.Storage == nil {
		return nil, fmt.Errorf("storage factory required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.IdleTTL <= 0 {
		return nil, fmt.Errorf("idle ttl must be positive")
	}
	interval := params.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	tokenKey := params.TokenKey
	if tokenKey == "" {
		tokenKey = config.DefaultTokenKey
	}
	return &Registry{
		workspaces: make(map[string]*Workspace),
		client:     params.Client,
		storage:    params.Storage,
		tokenKey:   tokenKey,
		perms:      params.Permissions,
		idleTTL:    params.IdleTTL,
		interval:   interval,
		metrics:    params.Metrics,
		logg:       params.Logger,
		now:        now,
	}, nil
}

// Acquire returns the workspace for id, creating and initialising it when the
// id is unknown or malformed. The returned id is the one the cookie must carry.
// A newly created workspace restores its session from storage before it is
// returned; a stale token is dropped and the workspace starts anonymous.
func (r *Registry) Acquire(ctx context.Context, id string) (*Workspace, error) {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	r.mu.Lock()
	ws, ok := r.workspaces[id]
	if ok {
		r.mu.Unlock()
		ws.touch(r.now())
		return ws, nil
	}
	ws, err := r.build(id)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.workspaces[id] = ws
	r.metrics.SetActive(len(r.workspaces))
	// Callers lock the workspace per event, so taking its lock before the
	// registry lock is released makes them wait until Init is done.
	ws.Lock()
	r.mu.Unlock()
	defer ws.Unlock()

	ctx = r.logg.WithWorkspaceID(ctx, id)
	if err := ws.Auth.Init(ctx); err != nil {
		r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), "workspace session not restored")
	} else if ws.Auth.Snapshot().Authenticated() {
		r.logg.Info(r.logg.WithUsername(ctx, ws.Auth.Username()), "workspace session restored")
	}
	return ws, nil
}

// Lookup returns a live workspace without creating one.
func (r *Registry) Lookup(id string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[id]
	return ws, ok
}

// Drop closes and forgets a workspace.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	ws, ok := r.workspaces[id]
	if ok {
		delete(r.workspaces, id)
	}
	r.metrics.SetActive(len(r.workspaces))
	r.mu.Unlock()
	if ok {
		ws.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// Sweep drops workspaces idle for longer than the configured TTL and returns
// how many were dropped.
func (r *Registry) Sweep(ctx context.Context) int {
	now := r.now()
	var expired []*Workspace

	r.mu.Lock()
	for id, ws := range r.workspaces {
		if ws.idleSince(now) > r.idleTTL {
			expired = append(expired, ws)
			delete(r.workspaces, id)
		}
	}
	r.metrics.SetActive(len(r.workspaces))
	r.mu.Unlock()

	for _, ws := range expired {
		ws.Close()
	}
	if len(expired) > 0 {
		r.metrics.AddExpired(len(expired))
		r.logg.Info(r.logg.WithField(ctx, "expired", len(expired)), "idle workspaces dropped")
	}
	return len(expired)
}

// Run sweeps idle workspaces until the context is canceled.
func (r *Registry) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logg.Info(ctx, "workspace sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Close drops every workspace.
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.workspaces
	r.workspaces = make(map[string]*Workspace)
	r.metrics.SetActive(0)
	r.mu.Unlock()
	for _, ws := range all {
		ws.Close()
	}
}

func (r *Registry) build(id string) (*Workspace, error) {
	tokens, err := session.NewManager(r.storage(id), r.tokenKey)
	if err != nil {
		return nil, fmt.Errorf("workspace %s: %w", id, err)
	}
	// The accounts calls carry explicit tokens, so the store can use the
	// shared client while everything else authenticates through the store.
	store, err := auth.NewStore(auth.StoreParams{
		API:    r.client.Auth(),
		Tokens: tokens,
		Logger: r.logg,
	})
	if err != nil {
		return nil, fmt.Errorf("workspace %s: %w", id, err)
	}
	client := r.client.WithTokens(store)

	ws := &Workspace{ID: id, Auth: store, lastSeen: r.now()}
	ws.Products = products.NewPage(products.PageParams{
		API:     client.Products(),
		Gate:    store,
		Allowed: r.perms.MutatorRoles,
		Logger:  r.logg,
	})
	ws.Inventory = inventory.NewPage(inventory.PageParams{
		Inventory: client.Inventory(),
		Catalog:   client.Products(),
		Users:     client.Auth(),
		Gate:      store,
		Allowed:   r.perms.MutatorRoles,
		Logger:    r.logg,
		Now:       r.now,
	})
	ws.Requests = requests.NewPage(requests.PageParams{
		API:        client.Requests(),
		Gate:       store,
		Requestors: r.perms.RequestorRoles,
		Approvers:  r.perms.ApproverRoles,
		Fulfillers: r.perms.FulfillerRoles,
		Logger:     r.logg,
	})
	return ws, nil
}
