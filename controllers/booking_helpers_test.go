package controllers

import (
	"testing"

	"github.com/supremebiotech/pestcontrol-crm/validation"
)

func ownedStub(ownedIDs ...uint) func(uint) (bool, error) {
	return func(id uint) (bool, error) {
		for _, owned := range ownedIDs {
			if id == owned {
				return true, nil
			}
		}
		return false, nil
	}
}

func validBookingForm() validation.Form {
	return validation.Form{
		"property_id":       "7",
		"preferred_service": "Termite Treatment",
		"pest_problem":      "Termites",
		"preferred_date":    "2026-09-15",
		"time_slot":         "09:00-10:00",
	}
}

func TestBookingRulesAcceptValidForm(t *testing.T) {
	errs, err := bookingRules(ownedStub(7)).Apply(validBookingForm())
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !errs.Ok() {
		t.Fatalf("expected valid form to pass, got %v", errs)
	}
}

func TestBookingRejectsOtherServiceWithoutDescription(t *testing.T) {
	form := validBookingForm()
	form["preferred_service"] = "Other"
	form["preferred_service_other"] = "  "

	errs, err := bookingRules(ownedStub(7)).Apply(form)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if _, ok := errs["preferred_service_other"]; !ok {
		t.Fatalf("expected error on preferred_service_other, got %v", errs)
	}
}

func TestBookingForeignPropertyIsFieldError(t *testing.T) {
	form := validBookingForm()
	form["property_id"] = "99"

	errs, err := bookingRules(ownedStub(7)).Apply(form)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if errs["property_id"] != "Please select a valid property" {
		t.Fatalf("expected property selector error, got %v", errs)
	}
}

func TestBookingRejectsUnknownTimeSlot(t *testing.T) {
	form := validBookingForm()
	form["time_slot"] = "12:00-13:00"

	errs, err := bookingRules(ownedStub(7)).Apply(form)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if _, ok := errs["time_slot"]; !ok {
		t.Fatalf("expected time_slot error, got %v", errs)
	}
}

func TestBookingRejectsMalformedDate(t *testing.T) {
	form := validBookingForm()
	form["preferred_date"] = "15/09/2026"

	errs, err := bookingRules(ownedStub(7)).Apply(form)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if _, ok := errs["preferred_date"]; !ok {
		t.Fatalf("expected preferred_date error, got %v", errs)
	}
}

func TestParsePreferredDate(t *testing.T) {
	d, ok := parsePreferredDate("2026-09-15")
	if !ok {
		t.Fatal("expected 2026-09-15 to parse")
	}
	if d.Year() != 2026 || d.Month() != 9 || d.Day() != 15 {
		t.Fatalf("unexpected parsed date %v", d)
	}
	if _, ok := parsePreferredDate("tomorrow"); ok {
		t.Fatal("expected non-date input to be rejected")
	}
}
