package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
)

func TestSanitizeStringCountsRunes(t *testing.T) {
	if got := SanitizeString("  结肠类器官  ", 2); got != "结肠" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString(" abc ", 0); got != "abc" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestParseSearchAndTab(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/products?q=+Colon+&tab=%E6%AF%8D%E6%B6%B2", nil)
	q, ok := ParseSearch(r)
	if !ok || q != "Colon" {
		t.Fatalf("unexpected search %q %v", q, ok)
	}
	tab, ok := ParseTab(r, func(v string) bool { return v == "母液" })
	if !ok || tab != "母液" {
		t.Fatalf("unexpected tab %q %v", tab, ok)
	}
	if _, ok := ParseTab(r, func(string) bool { return false }); ok {
		t.Fatalf("invalid tab must be ignored")
	}

	bare := httptest.NewRequest(http.MethodGet, "/products", nil)
	if _, ok := ParseSearch(bare); ok {
		t.Fatalf("absent q must report not sent")
	}
	cleared := httptest.NewRequest(http.MethodGet, "/products?q=", nil)
	if q, ok := ParseSearch(cleared); !ok || q != "" {
		t.Fatalf("empty q clears the search, got %q %v", q, ok)
	}
}

func TestParseForm(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/products?productid=query", strings.NewReader("productid=P001"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	values, err := ParseForm(httptest.NewRecorder(), r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := values.Get("productid"); got != "P001" {
		t.Fatalf("query values must not leak into the form, got %q", got)
	}

	big := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader("x="+strings.Repeat("a", maxFormBytes+1)))
	big.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if _, err := ParseForm(httptest.NewRecorder(), big); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("oversized body must fail validation, got %v", err)
	}
}
