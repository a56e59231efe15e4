package forms

import (
	"net/url"

	"github.com/aimingmed/sctracker-console/pkg/enums"
	"github.com/aimingmed/sctracker-console/pkg/models"
)

// ProductForm is the catalog entry form. ProductID is read-only when editing.
type ProductForm struct {
	ProductID                  string            `form:"productid" validate:"required,min=1,max=20"`
	Category                   enums.Category    `form:"category" validate:"required,enum"`
	SubCategory                enums.SubCategory `form:"setsubcategory" validate:"required,enum"`
	Source                     enums.Source      `form:"source" validate:"required,enum"`
	NameEN                     string            `form:"productnameen" validate:"required"`
	NameZH                     string            `form:"productnamezh" validate:"required"`
	Specification              string            `form:"specification" validate:"required"`
	Unit                       enums.Unit        `form:"unit" validate:"required,enum"`
	Components                 []string          `form:"components"`
	SoldIndependently          bool              `form:"is_sold_independently"`
	RemarksTemperature         *string           `form:"remarks_temperature"`
	StorageTemperatureDuration *string           `form:"storage_temperature_duration"`
	ReorderLevel               int               `form:"reorderlevel" validate:"gte=0"`
	TargetStockLevel           int               `form:"targetstocklevel" validate:"gte=0"`
	LeadTime                   int               `form:"leadtime" validate:"gte=0"`
}

// NewProductForm is the blank create form.
func NewProductForm() ProductForm {
	return ProductForm{SoldIndependently: true, Components: []string{}}
}

// DecodeProduct reads a posted product form and validates it.
func DecodeProduct(src url.Values) (ProductForm, FieldErrors) {
	v := newValues(src)
	form := ProductForm{
		ProductID:                  v.str("productid"),
		Category:                   enums.Category(v.str("category")),
		SubCategory:                enums.SubCategory(v.str("setsubcategory")),
		Source:                     enums.Source(v.str("source")),
		NameEN:                     v.str("productnameen"),
		NameZH:                     v.str("productnamezh"),
		Specification:              v.str("specification"),
		Unit:                       enums.Unit(v.str("unit")),
		Components:                 v.list("components"),
		SoldIndependently:          v.boolean("is_sold_independently"),
		RemarksTemperature:         v.optStr("remarks_temperature"),
		StorageTemperatureDuration: v.optStr("storage_temperature_duration"),
		ReorderLevel:               v.integer("reorderlevel"),
		TargetStockLevel:           v.integer("targetstocklevel"),
		LeadTime:                   v.integer("leadtime"),
	}
	return form, merge(v.errs, Validate(form))
}

// ProductFormFrom prefills the edit form.
func ProductFormFrom(p models.ProductDetails) ProductForm {
	return ProductForm{
		ProductID:                  p.ProductID,
		Category:                   p.Category,
		SubCategory:                p.SubCategory,
		Source:                     p.Source,
		NameEN:                     p.NameEN,
		NameZH:                     p.NameZH,
		Specification:              p.Specification,
		Unit:                       p.Unit,
		Components:                 append([]string{}, p.Components...),
		SoldIndependently:          p.SoldIndependently,
		RemarksTemperature:         p.RemarksTemperature,
		StorageTemperatureDuration: p.StorageTemperatureDuration,
		ReorderLevel:               p.ReorderLevel,
		TargetStockLevel:           p.TargetStockLevel,
		LeadTime:                   p.LeadTime,
	}
}

func (f ProductForm) Model() models.ProductDetails {
	components := f.Components
	if components == nil {
		components = []string{}
	}
	return models.ProductDetails{
		ProductID:                  f.ProductID,
		Category:                   f.Category,
		SubCategory:                f.SubCategory,
		Source:                     f.Source,
		NameEN:                     f.NameEN,
		NameZH:                     f.NameZH,
		Specification:              f.Specification,
		Unit:                       f.Unit,
		Components:                 components,
		SoldIndependently:          f.SoldIndependently,
		RemarksTemperature:         f.RemarksTemperature,
		StorageTemperatureDuration: f.StorageTemperatureDuration,
		ReorderLevel:               f.ReorderLevel,
		TargetStockLevel:           f.TargetStockLevel,
		LeadTime:                   f.LeadTime,
	}
}

// Key is the product id the form edits.
func (f ProductForm) Key() string { return f.ProductID }
