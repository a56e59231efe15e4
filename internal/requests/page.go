// Package requests is the demand page: product requests raised by requestors
// and moved through approval and fulfilment.
package requests

import (
	"context"

	"github.com/aimingmed/sctracker-console/internal/forms"
	"github.com/aimingmed/sctracker-console/internal/liststate"
	"github.com/aimingmed/sctracker-console/internal/mutation"
	"github.com/aimingmed/sctracker-console/pkg/enums"
	"github.com/aimingmed/sctracker-console/pkg/logger"
	"github.com/aimingmed/sctracker-console/pkg/models"
)

type requestsAPI interface {
	List(ctx context.Context) ([]models.ProductRequest, error)
	Create(ctx context.Context, in models.ProductRequestCreate) (*models.ProductRequest, error)
	Update(ctx context.Context, requestID string, in models.ProductRequestCreate) (*models.ProductRequest, error)
	Delete(ctx context.Context, requestID string) error
	Approve(ctx context.Context, requestID string) (*models.ProductRequest, error)
	Reject(ctx context.Context, requestID string) (*models.ProductRequest, error)
	Fulfill(ctx context.Context, requestID string) (*models.ProductRequest, error)
}

// DefaultTab lists requests waiting for a decision.
const DefaultTab = enums.RequestStatusPending

// Action is a status transition offered on a request row.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionFulfill Action = "fulfill"
)

type Page struct {
	List *liststate.Controller[models.ProductRequest]
	Flow *mutation.Flow[forms.RequestForm]

	api        requestsAPI
	gate       mutation.RoleGate
	approvers  []string
	fulfillers []string
}

type PageParams struct {
	API  requestsAPI
	Gate mutation.RoleGate
	// Requestors may create, edit and delete requests.
	Requestors []string
	Approvers  []string
	Fulfillers []string
	Logger     *logger.Logger
}

func NewPage(params PageParams) *Page {
	list := liststate.New(liststate.Options[models.ProductRequest]{
		Fetch: params.API.List,
		Match: Match,
		CategoryOf: func(r models.ProductRequest) string {
			return string(r.Status)
		},
		DefaultCategory: string(DefaultTab),
	})
	api := params.API
	flow := mutation.New(mutation.Options[forms.RequestForm]{
		Gate:    params.Gate,
		Allowed: params.Requestors,
		List:    list,
		Logger:  params.Logger,
		Ops: mutation.Ops[forms.RequestForm]{
			Create: func(ctx context.Context, form forms.RequestForm) error {
				_, err := api.Create(ctx, form.Model())
				return err
			},
			Update: func(ctx context.Context, requestID string, form forms.RequestForm) error {
				_, err := api.Update(ctx, requestID, form.Model())
				return err
			},
			Delete: api.Delete,
		},
	})
	return &Page{
		List:       list,
		Flow:       flow,
		api:        api,
		gate:       params.Gate,
		approvers:  append([]string(nil), params.Approvers...),
		fulfillers: append([]string(nil), params.Fulfillers...),
	}
}

func (p *Page) Load(ctx context.Context) error {
	return p.List.Load(ctx)
}

func (p *Page) OpenCreate() {
	p.Flow.OpenCreate(forms.NewRequestForm())
}

func (p *Page) OpenEdit(requestID string) bool {
	req, ok := p.Lookup(requestID)
	if !ok {
		return false
	}
	p.Flow.OpenEdit(forms.RequestFormFrom(req))
	return true
}

func (p *Page) Lookup(requestID string) (models.ProductRequest, bool) {
	return p.List.Find(func(r models.ProductRequest) bool { return r.RequestID == requestID })
}

// CanApprove gates the approve and reject buttons.
func (p *Page) CanApprove() bool {
	return p.gate != nil && len(p.approvers) > 0 && p.gate.HasAnyRole(p.approvers...)
}

// CanFulfill gates the fulfil button.
func (p *Page) CanFulfill() bool {
	return p.gate != nil && len(p.fulfillers) > 0 && p.gate.HasAnyRole(p.fulfillers...)
}

// Approve, Reject and Fulfill move a request to its next status and reload
// the whole list. Without the gating role no call is made.
func (p *Page) Approve(ctx context.Context, requestID string) error {
	return p.Transition(ctx, ActionApprove, requestID)
}

func (p *Page) Reject(ctx context.Context, requestID string) error {
	return p.Transition(ctx, ActionReject, requestID)
}

func (p *Page) Fulfill(ctx context.Context, requestID string) error {
	return p.Transition(ctx, ActionFulfill, requestID)
}

func (p *Page) Transition(ctx context.Context, action Action, requestID string) error {
	var (
		allowed []string
		call    func(context.Context, string) (*models.ProductRequest, error)
	)
	switch action {
	case ActionApprove:
		allowed, call = p.approvers, p.api.Approve
	case ActionReject:
		allowed, call = p.approvers, p.api.Reject
	case ActionFulfill:
		allowed, call = p.fulfillers, p.api.Fulfill
	default:
		return ErrUnknownAction
	}
	return p.Flow.Action(ctx, allowed, func(ctx context.Context) error {
		_, err := call(ctx, requestID)
		return err
	})
}

func (p *Page) Close() {
	p.List.Close()
	p.Flow.Close()
}

// Match searches the request id, requestor, product id and product names.
func Match(r models.ProductRequest, term string) bool {
	return liststate.ContainsFold(term,
		r.RequestID, r.RequestorName, r.RequestProductID, r.Product.NameEN, r.Product.NameZH)
}
