package products

import (
	"github.com/aimingmed/sctracker-console/pkg/enums"
	"github.com/aimingmed/sctracker-console/pkg/models"
)

// media are organoid sub categories shown under the 母液 tab.
var media = map[enums.SubCategory]bool{
	enums.SubCategoryOrganoidDifferentiationMedium: true,
	enums.SubCategoryOrganoidBasalMedium:           true,
	enums.SubCategoryCompleteOrganoidCultureMedium: true,
	enums.SubCategoryOrganoidConditionedMedium:     true,
}

// TypeOf places a product under one console tab. Media go to 母液, other
// organoid products to 产品, reagents to 原料, consumables and equipment to 耗材.
func TypeOf(p models.ProductDetails) enums.ProductType {
	if media[p.SubCategory] {
		return enums.ProductTypeStockSolution
	}
	switch p.Category {
	case enums.CategoryReagent:
		return enums.ProductTypeRawMaterial
	case enums.CategoryConsumable, enums.CategoryEquipment:
		return enums.ProductTypeConsumable
	default:
		return enums.ProductTypeProduct
	}
}
