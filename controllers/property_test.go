package controllers

import (
	"testing"

	"github.com/supremebiotech/pestcontrol-crm/validation"
)

// registryStub mimics propertyNameTaken's scoping: names are recorded per
// customer, and editID is skipped the way an edit excludes its own row.
type registryStub struct {
	names  map[uint]map[uint]string // customerID -> propertyID -> name
	editID uint
}

func (r *registryStub) takenFor(customerID uint) func(string) (bool, error) {
	return func(value string) (bool, error) {
		for id, name := range r.names[customerID] {
			if id == r.editID {
				continue
			}
			if name == value {
				return true, nil
			}
		}
		return false, nil
	}
}

func validPropertyForm() validation.Form {
	return validation.Form{
		"property_name": "Main Warehouse",
		"street_number": "12",
		"street":        "Mabini St",
		"city":          "Quezon City",
		"province":      "Metro Manila",
		"country":       "Philippines",
		"zip_code":      "1100",
		"property_type": "Commercial",
		"floor_area":    "250.5",
	}
}

func TestPropertyRulesAcceptValidForm(t *testing.T) {
	reg := &registryStub{names: map[uint]map[uint]string{}}
	errs, err := propertyRules(reg.takenFor(1)).Apply(validPropertyForm())
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !errs.Ok() {
		t.Fatalf("expected valid form to pass, got %v", errs)
	}
}

func TestPropertyNameCollisionWithinSameOwner(t *testing.T) {
	reg := &registryStub{names: map[uint]map[uint]string{
		1: {10: "Main Warehouse"},
	}}

	errs, err := propertyRules(reg.takenFor(1)).Apply(validPropertyForm())
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if errs["property_name"] != msgPropertyNameTaken {
		t.Fatalf("expected collision message for the owner's duplicate name, got %v", errs)
	}
}

func TestPropertyNameSharedAcrossCustomers(t *testing.T) {
	reg := &registryStub{names: map[uint]map[uint]string{
		1: {10: "Main Warehouse"},
	}}

	// A different customer registers the same name.
	errs, err := propertyRules(reg.takenFor(2)).Apply(validPropertyForm())
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !errs.Ok() {
		t.Fatalf("name uniqueness is per owner; expected the second customer to pass, got %v", errs)
	}
}

func TestPropertyEditKeepsOwnCurrentName(t *testing.T) {
	reg := &registryStub{
		names:  map[uint]map[uint]string{1: {10: "Main Warehouse"}},
		editID: 10,
	}

	// Editing property 10 and re-submitting its current name must succeed.
	errs, err := propertyRules(reg.takenFor(1)).Apply(validPropertyForm())
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !errs.Ok() {
		t.Fatalf("uniqueness must exclude the record being edited, got %v", errs)
	}
}

func TestPropertyRulesRejectUnknownType(t *testing.T) {
	reg := &registryStub{names: map[uint]map[uint]string{}}
	form := validPropertyForm()
	form["property_type"] = "Castle"

	errs, err := propertyRules(reg.takenFor(1)).Apply(form)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if _, ok := errs["property_type"]; !ok {
		t.Fatalf("expected property_type error, got %v", errs)
	}
}
