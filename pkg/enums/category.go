package enums

import "fmt"

// Category is the top-level product family.
type Category string

const (
	CategoryOrganoid   Category = "Organoid(类器官)"
	CategoryConsumable Category = "Consumable(耗材)"
	CategoryEquipment  Category = "Equipment(设备)"
	CategoryReagent    Category = "Reagent(试剂)"
)

var validCategories = []Category{
	CategoryOrganoid,
	CategoryConsumable,
	CategoryEquipment,
	CategoryReagent,
}

// String implements fmt.Stringer.
func (v Category) String() string {
	return string(v)
}

// IsValid reports whether the value is a known Category.
func (v Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == v {
			return true
		}
	}
	return false
}

// Categories returns every Category in display order.
func Categories() []Category {
	return append([]Category(nil), validCategories...)
}

// ParseCategory converts raw input into a Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}
