package models

import "bts/src/types"

// FareRule holds the per-route base price and discount fractions. Discounts
// are fractions in [0,1); the adult discount is always zero and not stored.
type FareRule struct {
	ID              uint    `gorm:"primarykey" json:"id"`
	RouteID         uint    `gorm:"uniqueIndex" json:"route_id"`
	BasePrice       float64 `json:"base_price"`
	ChildDiscount   float64 `json:"child_discount"`
	SeniorDiscount  float64 `json:"senior_discount"`
	StudentDiscount float64 `json:"student_discount"`
	DynamicPricing  bool    `gorm:"default:false" json:"dynamic_pricing"`

	Route *Route `json:"-"`

	types.Timestamps
}
