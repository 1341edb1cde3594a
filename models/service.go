package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceStatus string

const (
	StatusForInspection  ServiceStatus = "For Inspection"
	StatusPendingPayment ServiceStatus = "Pending Payment"
	StatusScheduled      ServiceStatus = "Scheduled"
	StatusInProgress     ServiceStatus = "In Progress"
	StatusCompleted      ServiceStatus = "Completed"
	StatusCancelled      ServiceStatus = "Cancelled"
)

type TimeSlot string

const (
	Slot0800 TimeSlot = "08:00-09:00"
	Slot0900 TimeSlot = "09:00-10:00"
	Slot1000 TimeSlot = "10:00-11:00"
	Slot1100 TimeSlot = "11:00-12:00"
	Slot1300 TimeSlot = "13:00-14:00"
	Slot1400 TimeSlot = "14:00-15:00"
	Slot1500 TimeSlot = "15:00-16:00"
	Slot1600 TimeSlot = "16:00-17:00"
)

// TimeSlots lists the eight bookable one-hour windows in display order.
var TimeSlots = []TimeSlot{
	Slot0800, Slot0900, Slot1000, Slot1100,
	Slot1300, Slot1400, Slot1500, Slot1600,
}

// ValidTimeSlot reports whether s is a bookable window.
func ValidTimeSlot(s TimeSlot) bool {
	for _, slot := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Service is a booked pest-inspection request. PreferredService and
// PestProblem hold the effective values: when the customer picked "Other"
// on the form, the free-text answer is what gets stored here.
type Service struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	ReferenceNumber  string        `json:"reference_number" gorm:"size:36;uniqueIndex"`
	CustomerID       uint          `json:"customer_id" gorm:"not null"`
	Customer         Customer      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	PropertyID       uint          `json:"property_id" gorm:"not null"`
	Property         Property      `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	PreferredService string        `json:"preferred_service" gorm:"size:255;not null"`
	PestProblem      string        `json:"pest_problem" gorm:"size:255;not null"`
	PreferredDate    time.Time     `json:"preferred_date" gorm:"not null"`
	TimeSlot         TimeSlot      `json:"time_slot" gorm:"size:20;not null"`
	Status           ServiceStatus `json:"status" gorm:"size:20;not null"`
	PaymentProofURL  string        `json:"payment_proof_url,omitempty" gorm:"size:512"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.Status == "" {
		s.Status = StatusForInspection
	}
	if s.ReferenceNumber == "" {
		s.ReferenceNumber = uuid.NewString()
	}
	return nil
}

// CanTransition reports whether the workflow allows moving from the current
// status to next. Completed and Cancelled are terminal; Cancelled is
// reachable from every non-terminal state.
func (s *Service) CanTransition(next ServiceStatus) bool {
	if next == StatusCancelled {
		return s.Status != StatusCompleted && s.Status != StatusCancelled
	}
	switch s.Status {
	case StatusForInspection:
		return next == StatusPendingPayment
	case StatusPendingPayment:
		return next == StatusScheduled
	case StatusScheduled:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted
	}
	return false
}

// UpdateStatus applies a workflow transition and persists it.
func (s *Service) UpdateStatus(tx *gorm.DB, next ServiceStatus) error {
	if !s.CanTransition(next) {
		return fmt.Errorf("invalid transition from %s to %s", s.Status, next)
	}
	s.Status = next
	return tx.Save(s).Error
}
