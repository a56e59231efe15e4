package views

import (
	"html/template"
	"time"

	"github.com/aimingmed/sctracker-console/internal/forms"
	"github.com/aimingmed/sctracker-console/internal/inventory"
	"github.com/aimingmed/sctracker-console/internal/mutation"
	"github.com/aimingmed/sctracker-console/pkg/enums"
	"github.com/aimingmed/sctracker-console/pkg/models"
)

type layoutCarrier interface {
	layout() *Layout
}

// Layout is the chrome shared by every page.
type Layout struct {
	Title     string
	Nav       string
	User      *models.UserProfile
	ExpiresAt time.Time
	CSRFField template.HTML
	Notice    string
}

func (l *Layout) layout() *Layout { return l }

// Tab is one category switch above a table.
type Tab struct {
	Value  string
	Active bool
}

// Perms decides which mutation controls are shown. The flows re-check on submit.
type Perms struct {
	CanMutate  bool
	CanApprove bool
	CanFulfill bool
}

// Table is the state shared by the three list pages.
type Table struct {
	Query     string
	Tab       string
	Tabs      []Tab
	Loaded    bool
	LoadErr   string
	ActionErr string
	Total     int
	Perms     Perms
}

type ProductsPage struct {
	Layout
	Table
	Rows  []models.ProductDetails
	Modal mutation.Modal[forms.ProductForm]

	Categories    []enums.Category
	SubCategories []enums.SubCategory
	Sources       []enums.Source
	Units         []enums.Unit
}

type InventoryPage struct {
	Layout
	Table
	Rows  []inventory.Row
	Modal mutation.Modal[forms.InventoryForm]

	Statuses  []enums.InventoryStatus
	Producers []string
	Products  []models.ProductDetails
}

type RequestsPage struct {
	Layout
	Table
	Rows  []models.ProductRequest
	Modal mutation.Modal[forms.RequestForm]

	Products []models.ProductDetails
}

type BatchesPage struct {
	Layout
	Product models.ProductDetails
	Rows    []models.ProductInventory
	Err     string
}

type LoginPage struct {
	Layout
	Username    string
	Err         string
	FieldErrors forms.FieldErrors
}

type ResetPasswordPage struct {
	Layout
	Err         string
	Done        string
	FieldErrors forms.FieldErrors
}

type ProfilePage struct {
	Layout
	Err string
}

type ErrorPage struct {
	Layout
	Status  int
	Message string
}

// Tabs builds the tab strip for values with active marked.
func Tabs[T ~string](values []T, active string) []Tab {
	out := make([]Tab, 0, len(values))
	for _, v := range values {
		out = append(out, Tab{Value: string(v), Active: string(v) == active})
	}
	return out
}

// ConfirmDeletePage asks before a record is removed. The form posts confirm=yes.
type ConfirmDeletePage struct {
	Layout
	Subject string
	Detail  string
	Action  string
	Cancel  string
}
