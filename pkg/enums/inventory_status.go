package enums

import "fmt"

// InventoryStatus is the free-form lifecycle label of a batch. Any status may follow any other.
type InventoryStatus string

const (
	InventoryStatusAvailable  InventoryStatus = "AVAILABLE(可用)"
	InventoryStatusReserved   InventoryStatus = "RESERVED(预留)"
	InventoryStatusInUse      InventoryStatus = "IN_USE(使用中)"
	InventoryStatusExpired    InventoryStatus = "EXPIRED(过期)"
	InventoryStatusDamaged    InventoryStatus = "DAMAGED(损坏)"
	InventoryStatusQuarantine InventoryStatus = "QUARANTINE(隔离)"
	InventoryStatusOutOfStock InventoryStatus = "OUT_OF_STOCK(缺货)"
)

var validInventoryStatuses = []InventoryStatus{
	InventoryStatusAvailable,
	InventoryStatusReserved,
	InventoryStatusInUse,
	InventoryStatusExpired,
	InventoryStatusDamaged,
	InventoryStatusQuarantine,
	InventoryStatusOutOfStock,
}

// String implements fmt.Stringer.
func (v InventoryStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known InventoryStatus.
func (v InventoryStatus) IsValid() bool {
	for _, candidate := range validInventoryStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// InventoryStatuses returns every InventoryStatus in display order.
func InventoryStatuses() []InventoryStatus {
	return append([]InventoryStatus(nil), validInventoryStatuses...)
}

// ParseInventoryStatus converts raw input into a InventoryStatus.
func ParseInventoryStatus(value string) (InventoryStatus, error) {
	for _, candidate := range validInventoryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory status %q", value)
}
