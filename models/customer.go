package models

import (
	"time"
)

type Customer struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	FirstName   string     `json:"first_name" gorm:"size:100;not null"`
	LastName    string     `json:"last_name" gorm:"size:100;not null"`
	Email       string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PhoneNumber string     `json:"phone_number" gorm:"size:11;uniqueIndex;not null"`
	Password    string     `json:"password,omitempty" gorm:"size:255;not null"`
	Properties  []Property `json:"properties,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Services    []Service  `json:"services,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// FullName is the display name stored alongside the session.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
