// Package inventory is the batch page. Each row joins a production batch with
// its catalog product so the table can show names and stock thresholds.
package inventory

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aimingmed/sctracker-console/internal/forms"
	"github.com/aimingmed/sctracker-console/internal/liststate"
	"github.com/aimingmed/sctracker-console/internal/mutation"
	"github.com/aimingmed/sctracker-console/internal/products"
	"github.com/aimingmed/sctracker-console/pkg/enums"
	"github.com/aimingmed/sctracker-console/pkg/logger"
	"github.com/aimingmed/sctracker-console/pkg/models"
)

type inventoryAPI interface {
	List(ctx context.Context) ([]models.ProductInventory, error)
	Create(ctx context.Context, in models.ProductInventoryCreate) (*models.ProductInventory, error)
	Update(ctx context.Context, batchID string, in models.ProductInventoryCreate) (*models.ProductInventory, error)
	Delete(ctx context.Context, batchID string) error
	ListByProduct(ctx context.Context, productID string) ([]models.ProductInventory, error)
}

type catalogAPI interface {
	List(ctx context.Context) ([]models.ProductDetails, error)
}

type usersAPI interface {
	ListUsers(ctx context.Context, role enums.Role) ([]models.UserProfile, error)
}

// Row is one batch joined with its product. Product is the zero value when
// the catalog has no entry for the batch.
type Row struct {
	models.ProductInventory
	Product      models.ProductDetails
	ProductFound bool
}

// LowStock reports whether the batch quantity has reached the product's reorder level.
func (r Row) LowStock() bool {
	return r.ProductFound && r.QuantityInStock <= r.Product.ReorderLevel
}

// Type is the tab the row is listed under.
func (r Row) Type() enums.ProductType {
	if !r.ProductFound {
		return products.DefaultTab
	}
	return products.TypeOf(r.Product)
}

type Page struct {
	List *liststate.Controller[Row]
	Flow *mutation.Flow[forms.InventoryForm]

	inventory inventoryAPI
	users     usersAPI
	now       func() time.Time
}

type PageParams struct {
	Inventory inventoryAPI
	Catalog   catalogAPI
	Users     usersAPI
	Gate      mutation.RoleGate
	Allowed   []string
	Logger    *logger.Logger
	Now       func() time.Time
}

func NewPage(params PageParams) *Page {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	list := liststate.New(liststate.Options[Row]{
		Fetch: joinedFetch(params.Inventory, params.Catalog),
		Match: Match,
		CategoryOf: func(r Row) string {
			return string(r.Type())
		},
		DefaultCategory: string(products.DefaultTab),
	})
	api := params.Inventory
	flow := mutation.New(mutation.Options[forms.InventoryForm]{
		Gate:    params.Gate,
		Allowed: params.Allowed,
		List:    list,
		Logger:  params.Logger,
		Ops: mutation.Ops[forms.InventoryForm]{
			Create: func(ctx context.Context, form forms.InventoryForm) error {
				_, err := api.Create(ctx, form.Model())
				return err
			},
			Update: func(ctx context.Context, batchID string, form forms.InventoryForm) error {
				_, err := api.Update(ctx, batchID, form.Model())
				return err
			},
			Delete: api.Delete,
		},
	})
	return &Page{List: list, Flow: flow, inventory: api, users: params.Users, now: now}
}

func (p *Page) Load(ctx context.Context) error {
	return p.List.Load(ctx)
}

func (p *Page) OpenCreate() {
	p.Flow.OpenCreate(forms.NewInventoryForm(p.now()))
}

// OpenEdit prefills the edit modal from the loaded rows.
func (p *Page) OpenEdit(batchID string) bool {
	row, ok := p.Lookup(batchID)
	if !ok {
		return false
	}
	p.Flow.OpenEdit(forms.InventoryFormFrom(row.ProductInventory))
	return true
}

func (p *Page) Lookup(batchID string) (Row, bool) {
	return p.List.Find(func(r Row) bool { return r.BatchIDInternal == batchID })
}

// Producers lists the usernames offered in the producedby select.
func (p *Page) Producers(ctx context.Context) ([]string, error) {
	users, err := p.users.ListUsers(ctx, enums.RoleProducer)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return names, nil
}

// BatchesFor lists the batches of one product straight from the API.
func (p *Page) BatchesFor(ctx context.Context, productID string) ([]models.ProductInventory, error) {
	return p.inventory.ListByProduct(ctx, productID)
}

func (p *Page) Close() {
	p.List.Close()
	p.Flow.Close()
}

// Match searches batch ids, the product id and both product names.
func Match(r Row, term string) bool {
	return liststate.ContainsFold(term,
		r.BatchIDInternal, r.BatchIDExternal, r.ProductID, r.Product.NameEN, r.Product.NameZH)
}

// joinedFetch loads batches and the catalog in parallel. Either failure fails
// the whole load so the controller keeps its previous rows.
func joinedFetch(inv inventoryAPI, catalog catalogAPI) liststate.Fetcher[Row] {
	return func(ctx context.Context) ([]Row, error) {
		var (
			batches     []models.ProductInventory
			catalogRows []models.ProductDetails
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			batches, err = inv.List(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			catalogRows, err = catalog.List(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return Join(batches, catalogRows), nil
	}
}

// Join pairs each batch with its product by productid, keeping batch order.
func Join(batches []models.ProductInventory, catalog []models.ProductDetails) []Row {
	byID := make(map[string]models.ProductDetails, len(catalog))
	for _, p := range catalog {
		byID[p.ProductID] = p
	}
	rows := make([]Row, 0, len(batches))
	for _, b := range batches {
		product, ok := byID[b.ProductID]
		rows = append(rows, Row{ProductInventory: b, Product: product, ProductFound: ok})
	}
	return rows
}
