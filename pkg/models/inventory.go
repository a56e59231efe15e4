package models

import "github.com/aimingmed/sctracker-console/pkg/enums"

// DateLayout is the wire format of productiondate.
const DateLayout = "2006-01-02"

// ProductInventory is one production batch. Batch ids are generated by the server.
type ProductInventory struct {
	BatchIDInternal string `json:"batchid_internal"`
	BatchIDExternal string `json:"batchid_external"`
	ProductInventoryCreate
	LastUpdated string `json:"lastupdated"`
}

// ProductInventoryCreate is the create/update payload. Dates stay as the
// server formats them: productiondate is YYYY-MM-DD, productiondatetime is ISO 8601.
type ProductInventoryCreate struct {
	ProductID          string                `json:"productid"`
	BasicMediumID      string                `json:"basicmediumid"`
	AdditiveID         string                `json:"addictiveid"`
	QuantityInStock    int                   `json:"quantityinstock"`
	ProductionDate     string                `json:"productiondate"`
	ImageURL           *string               `json:"imageurl,omitempty"`
	Status             enums.InventoryStatus `json:"status"`
	ProductionDateTime string                `json:"productiondatetime"`
	ProducedBy         string                `json:"producedby"`
	ToShow             bool                  `json:"to_show"`
	LastUpdatedBy      string                `json:"lastupdatedby"`
	COA
}

// COA holds the optional certificate-of-analysis readings.
type COA struct {
	Appearance              *string  `json:"coa_appearance,omitempty"`
	Clarity                 *bool    `json:"coa_clarity,omitempty"`
	OsmoticPressure         *float64 `json:"coa_osmoticpressure,omitempty"`
	PH                      *float64 `json:"coa_ph,omitempty"`
	Mycoplasma              *bool    `json:"coa__mycoplasma,omitempty"`
	Sterility               *bool    `json:"coa_sterility,omitempty"`
	FillingVolumeDifference *bool    `json:"coa_fillingvolumedifference,omitempty"`
}

// Payload strips the server-generated fields for an update call.
func (p ProductInventory) Payload() ProductInventoryCreate {
	return p.ProductInventoryCreate
}
