package requests

import (
	"context"
	"testing"

	"github.com/aimingmed/sctracker-console/internal/forms"
	"github.com/aimingmed/sctracker-console/internal/mutation"
	"github.com/aimingmed/sctracker-console/pkg/enums"
	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
	"github.com/aimingmed/sctracker-console/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestsAPI struct {
	rows      []models.ProductRequest
	calls     []string
	listCalls int
}

func (f *fakeRequestsAPI) List(context.Context) ([]models.ProductRequest, error) {
	f.listCalls++
	return append([]models.ProductRequest(nil), f.rows...), nil
}

func (f *fakeRequestsAPI) Create(_ context.Context, in models.ProductRequestCreate) (*models.ProductRequest, error) {
	f.calls = append(f.calls, "create")
	row := models.ProductRequest{
		RequestID:        "R-NEW",
		RequestorName:    in.RequestorName,
		RequestProductID: in.RequestProductID,
		RequestUnit:      in.RequestUnit,
		Status:           enums.RequestStatusPending,
	}
	f.rows = append(f.rows, row)
	return &row, nil
}

func (f *fakeRequestsAPI) Update(_ context.Context, id string, in models.ProductRequestCreate) (*models.ProductRequest, error) {
	f.calls = append(f.calls, "update "+id)
	for i := range f.rows {
		if f.rows[i].RequestID == id {
			f.rows[i].RequestUnit = in.RequestUnit
			return &f.rows[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "missing")
}

func (f *fakeRequestsAPI) Delete(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete "+id)
	return nil
}

func (f *fakeRequestsAPI) Approve(_ context.Context, id string) (*models.ProductRequest, error) {
	return f.move(id, "approve", enums.RequestStatusApproved)
}

func (f *fakeRequestsAPI) Reject(_ context.Context, id string) (*models.ProductRequest, error) {
	return f.move(id, "reject", enums.RequestStatusRejected)
}

func (f *fakeRequestsAPI) Fulfill(_ context.Context, id string) (*models.ProductRequest, error) {
	return f.move(id, "fulfill", enums.RequestStatusFulfilled)
}

func (f *fakeRequestsAPI) move(id, action string, to enums.RequestStatus) (*models.ProductRequest, error) {
	f.calls = append(f.calls, action+" "+id)
	for i := range f.rows {
		if f.rows[i].RequestID == id {
			f.rows[i].Status = to
			return &f.rows[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "missing")
}

type roleSet []string

func (r roleSet) HasAnyRole(allowed ...string) bool {
	for _, have := range r {
		for _, want := range allowed {
			if have == want {
				return true
			}
		}
	}
	return false
}

func pending(id string) models.ProductRequest {
	return models.ProductRequest{
		RequestID:        id,
		RequestorName:    "rita",
		RequestProductID: "P001",
		Product:          models.ProductRef{ProductID: "P001", NameEN: "Colon Organoid", NameZH: "结肠类器官"},
		RequestUnit:      2,
		Status:           enums.RequestStatusPending,
	}
}

func newTestPage(api *fakeRequestsAPI, have roleSet) *Page {
	return NewPage(PageParams{
		API:        api,
		Gate:       have,
		Requestors: []string{"ADMIN", "REQUESTOR"},
		Approvers:  []string{"REQUEST_APPROVER"},
		Fulfillers: []string{"FULFILLER"},
	})
}

func TestTabsFollowStatus(t *testing.T) {
	fulfilled := pending("R2")
	fulfilled.Status = enums.RequestStatusFulfilled
	api := &fakeRequestsAPI{rows: []models.ProductRequest{pending("R1"), fulfilled}}
	page := newTestPage(api, nil)
	require.NoError(t, page.Load(context.Background()))

	view := page.List.View()
	require.Len(t, view, 1)
	assert.Equal(t, "R1", view[0].RequestID)

	page.List.SetCategory(string(enums.RequestStatusFulfilled))
	view = page.List.View()
	require.Len(t, view, 1)
	assert.Equal(t, "R2", view[0].RequestID)
}

func TestSearchMatchesProductNames(t *testing.T) {
	api := &fakeRequestsAPI{rows: []models.ProductRequest{pending("R1")}}
	page := newTestPage(api, nil)
	require.NoError(t, page.Load(context.Background()))

	page.List.SetFilter("colon")
	assert.Len(t, page.List.View(), 1)
	page.List.SetFilter("RITA")
	assert.Len(t, page.List.View(), 1)
	page.List.SetFilter("lung")
	assert.Empty(t, page.List.View())
}

func TestApproveReloadsList(t *testing.T) {
	api := &fakeRequestsAPI{rows: []models.ProductRequest{pending("R1")}}
	page := newTestPage(api, roleSet{"REQUEST_APPROVER"})
	ctx := context.Background()
	require.NoError(t, page.Load(ctx))

	assert.True(t, page.CanApprove())
	assert.False(t, page.CanFulfill())
	require.NoError(t, page.Approve(ctx, "R1"))
	assert.Equal(t, []string{"approve R1"}, api.calls)
	assert.Equal(t, 2, api.listCalls)
	assert.Empty(t, page.List.View(), "approved request leaves the pending tab")

	got, ok := page.Lookup("R1")
	require.True(t, ok)
	assert.Equal(t, enums.RequestStatusApproved, got.Status)
}

func TestTransitionsWithoutRoleMakeNoCalls(t *testing.T) {
	api := &fakeRequestsAPI{rows: []models.ProductRequest{pending("R1")}}
	page := newTestPage(api, roleSet{"REQUESTOR"})
	ctx := context.Background()
	require.NoError(t, page.Load(ctx))

	for _, action := range []Action{ActionApprove, ActionReject, ActionFulfill} {
		err := page.Transition(ctx, action, "R1")
		require.Error(t, err, action)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden), action)
	}
	assert.Empty(t, api.calls)
	assert.Equal(t, 1, api.listCalls)
	assert.NotEmpty(t, page.Flow.Err())
}

func TestFulfillerCanFulfil(t *testing.T) {
	approved := pending("R1")
	approved.Status = enums.RequestStatusApproved
	api := &fakeRequestsAPI{rows: []models.ProductRequest{approved}}
	page := newTestPage(api, roleSet{"FULFILLER"})
	require.NoError(t, page.Fulfill(context.Background(), "R1"))
	assert.Equal(t, []string{"fulfill R1"}, api.calls)
}

func TestUnknownAction(t *testing.T) {
	page := newTestPage(&fakeRequestsAPI{}, roleSet{"ADMIN"})
	assert.ErrorIs(t, page.Transition(context.Background(), Action("archive"), "R1"), ErrUnknownAction)
}

func TestRequestorCreatesAndEdits(t *testing.T) {
	api := &fakeRequestsAPI{}
	page := newTestPage(api, roleSet{"REQUESTOR"})
	ctx := context.Background()
	require.NoError(t, page.Load(ctx))

	page.OpenCreate()
	form := page.Flow.Modal().Form
	form.RequestProductID = "P001"
	form.RequestorName = "rita"
	require.NoError(t, page.Flow.Submit(ctx, mutation.ModeCreate, form, nil))

	require.True(t, page.OpenEdit("R-NEW"))
	edit := page.Flow.Modal().Form
	edit.RequestUnit = 9
	require.NoError(t, page.Flow.Submit(ctx, mutation.ModeEdit, edit, nil))

	require.NoError(t, page.Flow.Delete(ctx, "R-NEW", true))
	assert.Equal(t, []string{"create", "update R-NEW", "delete R-NEW"}, api.calls)
}

func TestZeroUnitRequestIsRejectedLocally(t *testing.T) {
	api := &fakeRequestsAPI{}
	page := newTestPage(api, roleSet{"REQUESTOR"})
	err := page.Flow.Submit(context.Background(), mutation.ModeCreate, forms.RequestForm{RequestProductID: "P001"}, nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Empty(t, api.calls)
}
