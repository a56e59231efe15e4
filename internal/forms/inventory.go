package forms

import (
	"net/url"
	"strings"
	"time"

	"github.com/aimingmed/sctracker-console/pkg/enums"
	"github.com/aimingmed/sctracker-console/pkg/models"
)

// datetime-local inputs post minutes precision without a zone.
const (
	localDateTimeLayout = "2006-01-02T15:04"
	wireDateTimeLayout  = "2006-01-02T15:04:05"
)

// InventoryForm is the batch form. BatchID is empty on create and read-only on edit.
type InventoryForm struct {
	BatchID            string                `form:"batchid_internal"`
	ProductID          string                `form:"productid" validate:"required,max=20"`
	BasicMediumID      string                `form:"basicmediumid" validate:"required,max=7"`
	AdditiveID         string                `form:"addictiveid" validate:"required,max=7"`
	QuantityInStock    int                   `form:"quantityinstock" validate:"gte=0"`
	ProductionDate     string                `form:"productiondate" validate:"required,datetime=2006-01-02"`
	ImageURL           *string               `form:"imageurl" validate:"omitempty,url"`
	Status             enums.InventoryStatus `form:"status" validate:"required,enum"`
	ProductionDateTime string                `form:"productiondatetime" validate:"required"`
	ProducedBy         string                `form:"producedby" validate:"required,max=50"`
	ToShow             bool                  `form:"to_show"`
	LastUpdatedBy      string                `form:"lastupdatedby" validate:"max=50"`

	COAAppearance              *string  `form:"coa_appearance" validate:"omitempty,max=100"`
	COAClarity                 *bool    `form:"coa_clarity"`
	COAOsmoticPressure         *float64 `form:"coa_osmoticpressure"`
	COAPH                      *float64 `form:"coa_ph" validate:"omitempty,gte=0,lte=14"`
	COAMycoplasma              *bool    `form:"coa__mycoplasma"`
	COASterility               *bool    `form:"coa_sterility"`
	COAFillingVolumeDifference *bool    `form:"coa_fillingvolumedifference"`
}

// NewInventoryForm is the blank create form with today's production date.
func NewInventoryForm(now time.Time) InventoryForm {
	return InventoryForm{
		ProductionDate:     now.Format(models.DateLayout),
		ProductionDateTime: now.Format(wireDateTimeLayout),
		Status:             enums.InventoryStatusAvailable,
		ToShow:             true,
	}
}

// DecodeInventory reads a posted batch form and validates it. The editor's
// username is stamped into lastupdatedby.
func DecodeInventory(src url.Values, editor string) (InventoryForm, FieldErrors) {
	v := newValues(src)
	form := InventoryForm{
		BatchID:                    v.str("batchid_internal"),
		ProductID:                  v.str("productid"),
		BasicMediumID:              v.str("basicmediumid"),
		AdditiveID:                 v.str("addictiveid"),
		QuantityInStock:            v.integer("quantityinstock"),
		ProductionDate:             v.str("productiondate"),
		ImageURL:                   v.optStr("imageurl"),
		Status:                     enums.InventoryStatus(v.str("status")),
		ProductionDateTime:         normalizeDateTime(v.str("productiondatetime")),
		ProducedBy:                 v.str("producedby"),
		ToShow:                     v.boolean("to_show"),
		LastUpdatedBy:              editor,
		COAAppearance:              v.optStr("coa_appearance"),
		COAClarity:                 v.optBool("coa_clarity"),
		COAOsmoticPressure:         v.optFloat("coa_osmoticpressure"),
		COAPH:                      v.optFloat("coa_ph"),
		COAMycoplasma:              v.optBool("coa__mycoplasma"),
		COASterility:               v.optBool("coa_sterility"),
		COAFillingVolumeDifference: v.optBool("coa_fillingvolumedifference"),
	}
	errs := merge(v.errs, Validate(form))
	if form.ProductionDateTime != "" {
		if _, err := time.Parse(wireDateTimeLayout, form.ProductionDateTime); err != nil {
			if errs == nil {
				errs = FieldErrors{}
			}
			errs.Add("productiondatetime", "must be a date and time")
		}
	}
	return form, errs
}

// InventoryFormFrom prefills the edit form.
func InventoryFormFrom(inv models.ProductInventory) InventoryForm {
	return InventoryForm{
		BatchID:                    inv.BatchIDInternal,
		ProductID:                  inv.ProductID,
		BasicMediumID:              inv.BasicMediumID,
		AdditiveID:                 inv.AdditiveID,
		QuantityInStock:            inv.QuantityInStock,
		ProductionDate:             inv.ProductionDate,
		ImageURL:                   inv.ImageURL,
		Status:                     inv.Status,
		ProductionDateTime:         normalizeDateTime(inv.ProductionDateTime),
		ProducedBy:                 inv.ProducedBy,
		ToShow:                     inv.ToShow,
		LastUpdatedBy:              inv.LastUpdatedBy,
		COAAppearance:              inv.Appearance,
		COAClarity:                 inv.Clarity,
		COAOsmoticPressure:         inv.OsmoticPressure,
		COAPH:                      inv.PH,
		COAMycoplasma:              inv.Mycoplasma,
		COASterility:               inv.Sterility,
		COAFillingVolumeDifference: inv.FillingVolumeDifference,
	}
}

func (f InventoryForm) Model() models.ProductInventoryCreate {
	return models.ProductInventoryCreate{
		ProductID:          f.ProductID,
		BasicMediumID:      f.BasicMediumID,
		AdditiveID:         f.AdditiveID,
		QuantityInStock:    f.QuantityInStock,
		ProductionDate:     f.ProductionDate,
		ImageURL:           f.ImageURL,
		Status:             f.Status,
		ProductionDateTime: f.ProductionDateTime,
		ProducedBy:         f.ProducedBy,
		ToShow:             f.ToShow,
		LastUpdatedBy:      f.LastUpdatedBy,
		COA: models.COA{
			Appearance:              f.COAAppearance,
			Clarity:                 f.COAClarity,
			OsmoticPressure:         f.COAOsmoticPressure,
			PH:                      f.COAPH,
			Mycoplasma:              f.COAMycoplasma,
			Sterility:               f.COASterility,
			FillingVolumeDifference: f.COAFillingVolumeDifference,
		},
	}
}

func (f InventoryForm) Key() string { return f.BatchID }

// LocalDateTime is the value for a datetime-local input.
func (f InventoryForm) LocalDateTime() string {
	if len(f.ProductionDateTime) >= len(localDateTimeLayout) {
		return f.ProductionDateTime[:len(localDateTimeLayout)]
	}
	return f.ProductionDateTime
}

// normalizeDateTime accepts datetime-local input or the API's ISO form and
// returns second precision without a zone.
func normalizeDateTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range []string{wireDateTimeLayout, localDateTimeLayout, time.RFC3339Nano, "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(wireDateTimeLayout)
		}
	}
	return raw
}
