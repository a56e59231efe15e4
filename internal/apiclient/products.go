package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aimingmed/sctracker-console/pkg/models"
)

const (
	resourceProducts = "products"
	productsPath     = "/productlog/product-details"
)

type ProductsAPI struct{ c *Client }

func (p *ProductsAPI) List(ctx context.Context) ([]models.ProductDetails, error) {
	var out []models.ProductDetails
	err := p.c.do(ctx, call{resource: resourceProducts, operation: "list", method: http.MethodGet, path: productsPath, out: &out})
	return out, err
}

func (p *ProductsAPI) Get(ctx context.Context, productID string) (*models.ProductDetails, error) {
	var out models.ProductDetails
	err := p.c.do(ctx, call{resource: resourceProducts, operation: "get", method: http.MethodGet, path: productPath(productID), out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProductsAPI) Create(ctx context.Context, in models.ProductDetails) (*models.ProductDetails, error) {
	var out models.ProductDetails
	err := p.c.do(ctx, call{resource: resourceProducts, operation: "create", method: http.MethodPost, path: productsPath, body: in, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProductsAPI) Update(ctx context.Context, productID string, in models.ProductDetails) (*models.ProductDetails, error) {
	var out models.ProductDetails
	err := p.c.do(ctx, call{resource: resourceProducts, operation: "update", method: http.MethodPut, path: productPath(productID), body: in, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProductsAPI) Delete(ctx context.Context, productID string) error {
	return p.c.do(ctx, call{resource: resourceProducts, operation: "delete", method: http.MethodDelete, path: productPath(productID)})
}

func productPath(productID string) string {
	return productsPath + "/" + url.PathEscape(productID)
}
