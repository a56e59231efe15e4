package views

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aimingmed/sctracker-console/internal/forms"
	"github.com/aimingmed/sctracker-console/internal/inventory"
	"github.com/aimingmed/sctracker-console/internal/mutation"
	"github.com/aimingmed/sctracker-console/pkg/enums"
	"github.com/aimingmed/sctracker-console/pkg/logger"
	"github.com/aimingmed/sctracker-console/pkg/models"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	rd, err := New(logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard}))
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	return rd
}

func render(t *testing.T, rd *Renderer, page string, data any) string {
	t.Helper()
	rec := httptest.NewRecorder()
	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, page, data)
	if rec.Code != http.StatusOK {
		t.Fatalf("render %s: status %d body=%s", page, rec.Code, rec.Body.String())
	}
	return rec.Body.String()
}

func TestTruncateCountsWideRunes(t *testing.T) {
	if got := Truncate("结肠类器官", 6); got != "结肠…" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := Truncate("Colon", 10); got != "Colon" {
		t.Fatalf("short strings are kept, got %q", got)
	}
	if got := Truncate("anything", 0); got != "anything" {
		t.Fatalf("zero width disables truncation, got %q", got)
	}
}

func TestEveryPageParses(t *testing.T) {
	rd := newRenderer(t)
	for _, page := range []string{"login", "reset_password", "profile", "products", "inventory", "requests", "batches", "error", "confirm_delete"} {
		if _, ok := rd.pages[page]; !ok {
			t.Fatalf("page %s missing", page)
		}
	}
}

func TestProductsPageHidesMutationsWithoutRole(t *testing.T) {
	rd := newRenderer(t)
	data := &ProductsPage{
		Layout: Layout{Title: "产品", Nav: "products", User: &models.UserProfile{Username: "rita"}},
		Table:  Table{Tab: "产品", Tabs: Tabs(enums.ProductTypes(), "产品"), Loaded: true, Total: 1},
		Rows: []models.ProductDetails{{
			ProductID: "P001", NameZH: "结肠类器官", NameEN: "Colon Organoid",
			Category: enums.CategoryOrganoid, SubCategory: enums.SubCategoryHumanOrganoid, Unit: enums.UnitTube,
		}},
	}
	body := render(t, rd, "products", data)
	if !strings.Contains(body, "P001") || !strings.Contains(body, "类器官") {
		t.Fatalf("expected row with bilingual label, got %s", body)
	}
	if strings.Contains(body, "/products/P001/delete") {
		t.Fatalf("delete control must be hidden without role")
	}

	data.Perms.CanMutate = true
	body = render(t, rd, "products", data)
	if !strings.Contains(body, "/products/P001/delete") {
		t.Fatalf("delete control expected for mutators")
	}
	if strings.Contains(body, `name="confirm"`) {
		t.Fatalf("the list must link to the confirmation step, not delete in one click")
	}
}

func TestConfirmDeletePagePostsConfirmation(t *testing.T) {
	rd := newRenderer(t)
	body := render(t, rd, "confirm_delete", &ConfirmDeletePage{
		Layout:  Layout{Title: "确认删除", User: &models.UserProfile{Username: "admin"}},
		Subject: "P001",
		Detail:  "结肠类器官",
		Action:  "/products/P001/delete",
		Cancel:  "/products?tab=%E4%BA%A7%E5%93%81",
	})
	for _, want := range []string{`action="/products/P001/delete"`, `name="confirm" value="yes"`, "结肠类器官", `href="/products?tab=%E4%BA%A7%E5%93%81"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("confirmation page missing %q: %s", want, body)
		}
	}
}

func TestProductModalShowsServerError(t *testing.T) {
	rd := newRenderer(t)
	data := &ProductsPage{
		Layout:     Layout{Title: "产品", User: &models.UserProfile{Username: "admin"}},
		Table:      Table{Perms: Perms{CanMutate: true}},
		Categories: enums.Categories(),
		Modal: mutation.Modal[forms.ProductForm]{
			Open: true, Mode: mutation.ModeEdit,
			Form: forms.ProductForm{ProductID: "P001"},
			Err:  "Product with productid P001 already exists",
		},
	}
	body := render(t, rd, "products", data)
	if !strings.Contains(body, "Product with productid P001 already exists") {
		t.Fatalf("modal error missing: %s", body)
	}
	if !strings.Contains(body, `action="/products/P001"`) || !strings.Contains(body, "readonly") {
		t.Fatalf("edit modal must post to the record and lock its id")
	}
}

func TestInventoryPageMarksLowStock(t *testing.T) {
	rd := newRenderer(t)
	row := inventory.Row{
		ProductInventory: models.ProductInventory{BatchIDInternal: "B1"},
		Product:          models.ProductDetails{ProductID: "P001", ReorderLevel: 5},
		ProductFound:     true,
	}
	row.QuantityInStock = 2
	body := render(t, rd, "inventory", &InventoryPage{
		Layout: Layout{Title: "库存", User: &models.UserProfile{Username: "p"}},
		Table:  Table{Loaded: true},
		Rows:   []inventory.Row{row},
	})
	if !strings.Contains(body, `class="low"`) {
		t.Fatalf("low stock row not marked: %s", body)
	}
}

func TestRequestsPageGatesTransitions(t *testing.T) {
	rd := newRenderer(t)
	data := &RequestsPage{
		Layout: Layout{Title: "需求", User: &models.UserProfile{Username: "a"}},
		Table:  Table{Loaded: true},
		Rows:   []models.ProductRequest{{RequestID: "R1", Status: enums.RequestStatusPending}},
	}
	if body := render(t, rd, "requests", data); strings.Contains(body, "/requests/R1/approve") {
		t.Fatalf("approve must be hidden without approver role")
	}
	data.Perms.CanApprove = true
	if body := render(t, rd, "requests", data); !strings.Contains(body, "/requests/R1/approve") {
		t.Fatalf("approve expected for approvers")
	}
}

func TestUnknownPageIsServerError(t *testing.T) {
	rd := newRenderer(t)
	rec := httptest.NewRecorder()
	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing", &ErrorPage{})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
