package controllers

import (
	"strconv"
	"time"

	"github.com/supremebiotech/pestcontrol-crm/models"
	"github.com/supremebiotech/pestcontrol-crm/validation"
)

const otherChoice = "Other"

const preferredDateLayout = "2006-01-02"

// parsePreferredDate accepts the booking form's YYYY-MM-DD date field.
func parsePreferredDate(value string) (time.Time, bool) {
	t, err := time.Parse(preferredDateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func preferredDateRule(field string) validation.Rule {
	return func(f validation.Form, e validation.Errors) error {
		if v := f.Get(field); v != "" {
			if _, ok := parsePreferredDate(v); !ok {
				e.Add(field, "Preferred date must be a valid date (YYYY-MM-DD)")
			}
		}
		return nil
	}
}

func timeSlotRule(field string) validation.Rule {
	return func(f validation.Form, e validation.Errors) error {
		if v := f.Get(field); v != "" && !models.ValidTimeSlot(models.TimeSlot(v)) {
			e.Add(field, "Please select one of the available time slots")
		}
		return nil
	}
}

// propertyOwnedRule rejects bookings against properties the caller does not
// own. The violation surfaces as a field error on the property selector,
// indistinguishable from picking a property that does not exist.
func propertyOwnedRule(field string, owned func(propertyID uint) (bool, error)) validation.Rule {
	return func(f validation.Form, e validation.Errors) error {
		v := f.Get(field)
		if v == "" {
			return nil
		}
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			e.Add(field, "Please select a valid property")
			return nil
		}
		ok, lookupErr := owned(uint(id))
		if lookupErr != nil {
			return lookupErr
		}
		if !ok {
			e.Add(field, "Please select a valid property")
		}
		return nil
	}
}

func bookingRules(owned func(propertyID uint) (bool, error)) validation.RuleSet {
	return validation.RuleSet{
		validation.Required("property_id"),
		propertyOwnedRule("property_id", owned),
		validation.Required("preferred_service"),
		validation.RequiredIf("preferred_service_other", "preferred_service", otherChoice,
			"Please describe the service you need"),
		validation.Required("pest_problem"),
		validation.RequiredIf("pest_problem_other", "pest_problem", otherChoice,
			"Please describe the pest problem"),
		validation.Required("preferred_date"),
		preferredDateRule("preferred_date"),
		validation.Required("time_slot"),
		timeSlotRule("time_slot"),
	}
}
