package models

import (
	"encoding/json"
	"testing"

	"github.com/aimingmed/sctracker-console/pkg/enums"
)

func TestProductInventoryDecodesFlatWireShape(t *testing.T) {
	raw := `{
		"batchid_internal": "P001-20250101-01",
		"batchid_external": "EXT-01",
		"productid": "P001",
		"basicmediumid": "BM001",
		"addictiveid": "AD001",
		"quantityinstock": 12,
		"productiondate": "2025-01-01",
		"imageurl": null,
		"status": "AVAILABLE(可用)",
		"productiondatetime": "2025-01-01T12:00:00",
		"producedby": "alice",
		"coa_ph": 7.4,
		"coa__mycoplasma": false,
		"to_show": true,
		"lastupdated": "2025-01-02T08:00:00",
		"lastupdatedby": "bob"
	}`
	var inv ProductInventory
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if inv.BatchIDInternal != "P001-20250101-01" || inv.ProductID != "P001" {
		t.Fatalf("unexpected identity %+v", inv)
	}
	if inv.Status != enums.InventoryStatusAvailable {
		t.Fatalf("unexpected status %q", inv.Status)
	}
	if inv.PH == nil || *inv.PH != 7.4 {
		t.Fatalf("expected embedded coa ph")
	}
	if inv.Mycoplasma == nil || *inv.Mycoplasma {
		t.Fatalf("explicit false must survive decoding")
	}
	if inv.ImageURL != nil {
		t.Fatalf("null image url should decode as nil")
	}

	body, err := json.Marshal(inv.Payload())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var generic map[string]any
	_ = json.Unmarshal(body, &generic)
	if _, ok := generic["batchid_internal"]; ok {
		t.Fatalf("update payload must not carry server-generated fields")
	}
	if _, ok := generic["coa_clarity"]; ok {
		t.Fatalf("unset coa readings should be omitted")
	}
}

func TestUserProfileHasAnyRole(t *testing.T) {
	u := UserProfile{Roles: []string{"REQUESTOR", "PRODUCER"}}
	if !u.HasAnyRole("ADMIN", "PRODUCER") {
		t.Fatalf("expected producer to match")
	}
	if u.HasAnyRole("ADMIN") || u.HasAnyRole() {
		t.Fatalf("unexpected role match")
	}
}
