// Package products is the catalog page: product list, search, tabs and the
// create/edit/delete flow.
package products

import (
	"context"

	"github.com/aimingmed/sctracker-console/internal/forms"
	"github.com/aimingmed/sctracker-console/internal/liststate"
	"github.com/aimingmed/sctracker-console/internal/mutation"
	"github.com/aimingmed/sctracker-console/pkg/enums"
	"github.com/aimingmed/sctracker-console/pkg/logger"
	"github.com/aimingmed/sctracker-console/pkg/models"
)

type productsAPI interface {
	List(ctx context.Context) ([]models.ProductDetails, error)
	Create(ctx context.Context, in models.ProductDetails) (*models.ProductDetails, error)
	Update(ctx context.Context, productID string, in models.ProductDetails) (*models.ProductDetails, error)
	Delete(ctx context.Context, productID string) error
}

// DefaultTab is the tab a fresh page opens on.
const DefaultTab = enums.ProductTypeProduct

type Page struct {
	List *liststate.Controller[models.ProductDetails]
	Flow *mutation.Flow[forms.ProductForm]
}

type PageParams struct {
	API     productsAPI
	Gate    mutation.RoleGate
	Allowed []string
	Logger  *logger.Logger
}

func NewPage(params PageParams) *Page {
	list := liststate.New(liststate.Options[models.ProductDetails]{
		Fetch: params.API.List,
		Match: Match,
		CategoryOf: func(p models.ProductDetails) string {
			return string(TypeOf(p))
		},
		DefaultCategory: string(DefaultTab),
	})
	flow := mutation.New(mutation.Options[forms.ProductForm]{
		Gate:    params.Gate,
		Allowed: params.Allowed,
		List:    list,
		Logger:  params.Logger,
		Ops: mutation.Ops[forms.ProductForm]{
			Create: func(ctx context.Context, form forms.ProductForm) error {
				_, err := params.API.Create(ctx, form.Model())
				return err
			},
			Update: func(ctx context.Context, productID string, form forms.ProductForm) error {
				_, err := params.API.Update(ctx, productID, form.Model())
				return err
			},
			Delete: params.API.Delete,
		},
	})
	return &Page{List: list, Flow: flow}
}

func (p *Page) Load(ctx context.Context) error {
	return p.List.Load(ctx)
}

// OpenEdit prefills the edit modal from the loaded collection.
func (p *Page) OpenEdit(productID string) bool {
	product, ok := p.Lookup(productID)
	if !ok {
		return false
	}
	p.Flow.OpenEdit(forms.ProductFormFrom(product))
	return true
}

func (p *Page) Lookup(productID string) (models.ProductDetails, bool) {
	return p.List.Find(func(item models.ProductDetails) bool { return item.ProductID == productID })
}

func (p *Page) Close() {
	p.List.Close()
	p.Flow.Close()
}

// Match searches the product id and both names.
func Match(p models.ProductDetails, term string) bool {
	return liststate.ContainsFold(term, p.ProductID, p.NameEN, p.NameZH)
}
