package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aimingmed/sctracker-console/pkg/models"
)

const (
	resourceInventory = "inventory"
	inventoryPath     = "/productlog/product-inventory"
)

type InventoryAPI struct{ c *Client }

func (i *InventoryAPI) List(ctx context.Context) ([]models.ProductInventory, error) {
	var out []models.ProductInventory
	err := i.c.do(ctx, call{resource: resourceInventory, operation: "list", method: http.MethodGet, path: inventoryPath, out: &out})
	return out, err
}

func (i *InventoryAPI) Get(ctx context.Context, batchID string) (*models.ProductInventory, error) {
	var out models.ProductInventory
	err := i.c.do(ctx, call{resource: resourceInventory, operation: "get", method: http.MethodGet, path: batchPath(batchID), out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (i *InventoryAPI) Create(ctx context.Context, in models.ProductInventoryCreate) (*models.ProductInventory, error) {
	var out models.ProductInventory
	err := i.c.do(ctx, call{resource: resourceInventory, operation: "create", method: http.MethodPost, path: inventoryPath, body: in, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (i *InventoryAPI) Update(ctx context.Context, batchID string, in models.ProductInventoryCreate) (*models.ProductInventory, error) {
	var out models.ProductInventory
	err := i.c.do(ctx, call{resource: resourceInventory, operation: "update", method: http.MethodPut, path: batchPath(batchID), body: in, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (i *InventoryAPI) Delete(ctx context.Context, batchID string) error {
	return i.c.do(ctx, call{resource: resourceInventory, operation: "delete", method: http.MethodDelete, path: batchPath(batchID)})
}

// ListByProduct returns every batch of one product.
func (i *InventoryAPI) ListByProduct(ctx context.Context, productID string) ([]models.ProductInventory, error) {
	var out []models.ProductInventory
	err := i.c.do(ctx, call{
		resource:  resourceInventory,
		operation: "list_by_product",
		method:    http.MethodGet,
		path:      inventoryPath + "/by-product/" + url.PathEscape(productID),
		out:       &out,
	})
	return out, err
}

func batchPath(batchID string) string {
	return inventoryPath + "/" + url.PathEscape(batchID)
}
