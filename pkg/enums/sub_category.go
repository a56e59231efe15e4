package enums

import "fmt"

// SubCategory narrows a Category. The API does not enforce any pairing between the two.
type SubCategory string

const (
	SubCategoryHumanOrganoid                 SubCategory = "Human Organoid(人源类器官)"
	SubCategoryMouseOrganoid                 SubCategory = "Mouse Organoid(小鼠类器官)"
	SubCategoryOtherAuxiliaryReagents        SubCategory = "Other Auxiliary Reagents(其他辅助试剂)"
	SubCategoryCryotubes                     SubCategory = "Cryotubes(冷冻管)"
	SubCategoryMatrigel                      SubCategory = "Matrigel(基质胶)"
	SubCategoryLargeEquipment                SubCategory = "Large Equipment(大型设备)"
	SubCategoryPrimers                       SubCategory = "Primers(引物)"
	SubCategoryCentrifugeTube                SubCategory = "Centrifuge Tube(离心管)"
	SubCategoryPipetteTips                   SubCategory = "Pipette Tips(移液枪吸头)"
	SubCategoryPipette                       SubCategory = "Pipette(移液枪)"
	SubCategoryOrganoidDifferentiationMedium SubCategory = "Organoid Differentiation Medium(类器官分化培养基)"
	SubCategoryOrganoidCultureKit            SubCategory = "Organoid Culture Kit(类器官培养套件)"
	SubCategoryOrganoidBasalMedium           SubCategory = "Organoid Basal Medium(类器官基础培养基)"
	SubCategoryCompleteOrganoidCultureMedium SubCategory = "Complete Organoid Culture Medium(类器官完全培养基)"
	SubCategoryOrganoidConditionedMedium     SubCategory = "Organoid Conditioned Medium(类器官条件培养基)"
	SubCategoryCellCulturePlate              SubCategory = "Cell Culture Plate(细胞培养板)"
	SubCategoryCellCultureFlask              SubCategory = "Cell Culture Flask(细胞培养瓶)"
	SubCategoryCellCultureDish               SubCategory = "Cell Culture Dish(细胞培养皿)"
	SubCategoryCellCultureReagents           SubCategory = "Cell Culture Reagents(细胞培养试剂)"
	SubCategoryCellShakeFlask                SubCategory = "Cell Shake Flask(细胞摇瓶)"
	SubCategoryCellCountingPlate             SubCategory = "Cell Counting Plate(细胞计数板)"
	SubCategoryChip                          SubCategory = "Chip(芯片)"
	SubCategorySerum                         SubCategory = "Serum(血清)"
)

var validSubCategories = []SubCategory{
	SubCategoryHumanOrganoid,
	SubCategoryMouseOrganoid,
	SubCategoryOtherAuxiliaryReagents,
	SubCategoryCryotubes,
	SubCategoryMatrigel,
	SubCategoryLargeEquipment,
	SubCategoryPrimers,
	SubCategoryCentrifugeTube,
	SubCategoryPipetteTips,
	SubCategoryPipette,
	SubCategoryOrganoidDifferentiationMedium,
	SubCategoryOrganoidCultureKit,
	SubCategoryOrganoidBasalMedium,
	SubCategoryCompleteOrganoidCultureMedium,
	SubCategoryOrganoidConditionedMedium,
	SubCategoryCellCulturePlate,
	SubCategoryCellCultureFlask,
	SubCategoryCellCultureDish,
	SubCategoryCellCultureReagents,
	SubCategoryCellShakeFlask,
	SubCategoryCellCountingPlate,
	SubCategoryChip,
	SubCategorySerum,
}

// String implements fmt.Stringer.
func (v SubCategory) String() string {
	return string(v)
}

// IsValid reports whether the value is a known SubCategory.
func (v SubCategory) IsValid() bool {
	for _, candidate := range validSubCategories {
		if candidate == v {
			return true
		}
	}
	return false
}

// SubCategories returns every SubCategory in display order.
func SubCategories() []SubCategory {
	return append([]SubCategory(nil), validSubCategories...)
}

// ParseSubCategory converts raw input into a SubCategory.
func ParseSubCategory(value string) (SubCategory, error) {
	for _, candidate := range validSubCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sub category %q", value)
}
