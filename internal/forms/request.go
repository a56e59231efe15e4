package forms

import (
	"net/url"

	"github.com/aimingmed/sctracker-console/pkg/models"
)

// RequestForm raises or edits a product request.
type RequestForm struct {
	RequestID        string `form:"requestid"`
	RequestorName    string `form:"requestorname" validate:"max=100"`
	RequestDate      string `form:"requestdate"`
	RequestProductID string `form:"requestproductid" validate:"required,max=20"`
	RequestUnit      int    `form:"requestunit" validate:"gt=0"`
	Urgent           bool   `form:"is_urgent"`
	Remarks          string `form:"remarks" validate:"max=4096"`
}

func NewRequestForm() RequestForm {
	return RequestForm{RequestUnit: 1}
}

// DecodeRequest reads a posted request form. The requestor defaults to the
// signed-in user; the API overwrites it from the token anyway.
func DecodeRequest(src url.Values, requestor string) (RequestForm, FieldErrors) {
	v := newValues(src)
	form := RequestForm{
		RequestID:        v.str("requestid"),
		RequestorName:    v.str("requestorname"),
		RequestDate:      v.str("requestdate"),
		RequestProductID: v.str("requestproductid"),
		RequestUnit:      v.integer("requestunit"),
		Urgent:           v.boolean("is_urgent"),
		Remarks:          v.str("remarks"),
	}
	if form.RequestorName == "" {
		form.RequestorName = requestor
	}
	return form, merge(v.errs, Validate(form))
}

func RequestFormFrom(r models.ProductRequest) RequestForm {
	return RequestForm{
		RequestID:        r.RequestID,
		RequestorName:    r.RequestorName,
		RequestDate:      r.RequestDate,
		RequestProductID: r.RequestProductID,
		RequestUnit:      r.RequestUnit,
		Urgent:           r.Urgent,
		Remarks:          r.Remarks,
	}
}

func (f RequestForm) Model() models.ProductRequestCreate {
	return models.ProductRequestCreate{
		RequestorName:    f.RequestorName,
		RequestDate:      f.RequestDate,
		RequestProductID: f.RequestProductID,
		RequestUnit:      f.RequestUnit,
		Urgent:           f.Urgent,
		Remarks:          f.Remarks,
	}
}

func (f RequestForm) Key() string { return f.RequestID }
