package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aimingmed/sctracker-console/pkg/models"
)

const (
	resourceRequests = "requests"
	requestsPath     = "/productrequests/requests/"
)

type RequestsAPI struct{ c *Client }

func (r *RequestsAPI) List(ctx context.Context) ([]models.ProductRequest, error) {
	var out []models.ProductRequest
	err := r.c.do(ctx, call{resource: resourceRequests, operation: "list", method: http.MethodGet, path: requestsPath, out: &out})
	return out, err
}

func (r *RequestsAPI) Get(ctx context.Context, requestID string) (*models.ProductRequest, error) {
	var out models.ProductRequest
	err := r.c.do(ctx, call{resource: resourceRequests, operation: "get", method: http.MethodGet, path: requestPath(requestID), out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RequestsAPI) Create(ctx context.Context, in models.ProductRequestCreate) (*models.ProductRequest, error) {
	var out models.ProductRequest
	err := r.c.do(ctx, call{resource: resourceRequests, operation: "create", method: http.MethodPost, path: requestsPath, body: in, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update answers with the flat request shape, without the embedded product.
func (r *RequestsAPI) Update(ctx context.Context, requestID string, in models.ProductRequestCreate) (*models.ProductRequest, error) {
	var out models.ProductRequest
	err := r.c.do(ctx, call{resource: resourceRequests, operation: "update", method: http.MethodPut, path: requestPath(requestID), body: in, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RequestsAPI) Delete(ctx context.Context, requestID string) error {
	return r.c.do(ctx, call{resource: resourceRequests, operation: "delete", method: http.MethodDelete, path: requestPath(requestID)})
}

func (r *RequestsAPI) Approve(ctx context.Context, requestID string) (*models.ProductRequest, error) {
	return r.transition(ctx, requestID, "approve")
}

func (r *RequestsAPI) Reject(ctx context.Context, requestID string) (*models.ProductRequest, error) {
	return r.transition(ctx, requestID, "reject")
}

// Fulfill only succeeds for APPROVED requests; the API answers 400 otherwise.
func (r *RequestsAPI) Fulfill(ctx context.Context, requestID string) (*models.ProductRequest, error) {
	return r.transition(ctx, requestID, "fullfill")
}

func (r *RequestsAPI) transition(ctx context.Context, requestID, action string) (*models.ProductRequest, error) {
	var out models.ProductRequest
	err := r.c.do(ctx, call{
		resource:  resourceRequests,
		operation: action,
		method:    http.MethodPut,
		path:      requestPath(requestID) + "/" + action,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func requestPath(requestID string) string {
	return requestsPath + url.PathEscape(requestID)
}
