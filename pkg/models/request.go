package models

import "github.com/aimingmed/sctracker-console/pkg/enums"

// ProductRequest is a demand raised against a catalog product.
type ProductRequest struct {
	RequestID        string              `json:"requestid"`
	RequestorName    string              `json:"requestorname"`
	RequestDate      string              `json:"requestdate"`
	RequestProductID string              `json:"requestproductid"`
	Product          ProductRef          `json:"product"`
	RequestUnit      int                 `json:"requestunit"`
	Urgent           bool                `json:"is_urgent"`
	Remarks          string              `json:"remarks"`
	Status           enums.RequestStatus `json:"status"`
	FulfillerName    *string             `json:"fullfillername,omitempty"`
	FulfillDate      *string             `json:"fullfilldate,omitempty"`
}

// ProductRequestCreate is the create/update payload. The server stamps
// requestorname from the token, so the console sends the session username.
type ProductRequestCreate struct {
	RequestorName    string `json:"requestorname"`
	RequestDate      string `json:"requestdate,omitempty"`
	RequestProductID string `json:"requestproductid"`
	RequestUnit      int    `json:"requestunit"`
	Urgent           bool   `json:"is_urgent"`
	Remarks          string `json:"remarks"`
}

// Payload turns a loaded request back into an update body.
func (r ProductRequest) Payload() ProductRequestCreate {
	return ProductRequestCreate{
		RequestorName:    r.RequestorName,
		RequestDate:      r.RequestDate,
		RequestProductID: r.RequestProductID,
		RequestUnit:      r.RequestUnit,
		Urgent:           r.Urgent,
		Remarks:          r.Remarks,
	}
}
