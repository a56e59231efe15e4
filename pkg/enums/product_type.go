package enums

import "fmt"

// ProductType is the console tab a product is shown under.
type ProductType string

const (
	ProductTypeProduct       ProductType = "产品"
	ProductTypeStockSolution ProductType = "母液"
	ProductTypeRawMaterial   ProductType = "原料"
	ProductTypeConsumable    ProductType = "耗材"
)

var validProductTypes = []ProductType{
	ProductTypeProduct,
	ProductTypeStockSolution,
	ProductTypeRawMaterial,
	ProductTypeConsumable,
}

// String implements fmt.Stringer.
func (v ProductType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known ProductType.
func (v ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ProductTypes returns every ProductType in display order.
func ProductTypes() []ProductType {
	return append([]ProductType(nil), validProductTypes...)
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}
