package models

import (
	"time"
)

type PropertyType string

const (
	PropertyResidential  PropertyType = "Residential"
	PropertyCommercial   PropertyType = "Commercial"
	PropertyIndustrial   PropertyType = "Industrial"
	PropertyAgricultural PropertyType = "Agricultural"
	PropertyMixedUse     PropertyType = "Mixed Use"
)

// ValidPropertyType reports whether t is one of the selectable property types.
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case PropertyResidential, PropertyCommercial, PropertyIndustrial, PropertyAgricultural, PropertyMixedUse:
		return true
	}
	return false
}

// Property name is unique per owner, not globally: two customers may both
// own a "Main Warehouse".
type Property struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	CustomerID   uint         `json:"customer_id" gorm:"not null;uniqueIndex:idx_customer_property_name"`
	Customer     Customer     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	PropertyName string       `json:"property_name" gorm:"size:255;not null;uniqueIndex:idx_customer_property_name"`
	StreetNumber string       `json:"street_number" gorm:"size:100"`
	Street       string       `json:"street" gorm:"size:255"`
	City         string       `json:"city" gorm:"size:100"`
	Province     string       `json:"province" gorm:"size:100"`
	Country      string       `json:"country" gorm:"size:100"`
	ZipCode      string       `json:"zip_code" gorm:"size:20"`
	PropertyType PropertyType `json:"property_type" gorm:"size:50;not null"`
	FloorArea    float64      `json:"floor_area" gorm:"type:decimal(10,2);not null"`
	Services     []Service    `json:"services,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (Property) TableName() string {
	return "properties"
}
