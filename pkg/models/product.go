package models

import "github.com/aimingmed/sctracker-console/pkg/enums"

// ProductDetails is a catalog entry. ProductID is immutable once created.
type ProductDetails struct {
	ProductID                  string            `json:"productid"`
	Category                   enums.Category    `json:"category"`
	SubCategory                enums.SubCategory `json:"setsubcategory"`
	Source                     enums.Source      `json:"source"`
	NameEN                     string            `json:"productnameen"`
	NameZH                     string            `json:"productnamezh"`
	Specification              string            `json:"specification"`
	Unit                       enums.Unit        `json:"unit"`
	Components                 []string          `json:"components"`
	SoldIndependently          bool              `json:"is_sold_independently"`
	RemarksTemperature         *string           `json:"remarks_temperature,omitempty"`
	StorageTemperatureDuration *string           `json:"storage_temperature_duration,omitempty"`
	ReorderLevel               int               `json:"reorderlevel"`
	TargetStockLevel           int               `json:"targetstocklevel"`
	LeadTime                   int               `json:"leadtime"`
}

// ProductRef is the abbreviated product embedded in request responses.
type ProductRef struct {
	ProductID string `json:"productid"`
	NameZH    string `json:"productnamezh"`
	NameEN    string `json:"productnameen"`
}
