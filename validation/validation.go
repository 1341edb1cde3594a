// Package validation implements the shared form-validation policy used by
// signup, profile editing, property registration and inspection booking.
//
// A RuleSet runs every rule against the submitted form and aggregates all
// failures into one field→message map; it never stops at the first error.
// Within a single field the first recorded message wins, so rule sets list
// required-ness before format checks and format checks before uniqueness
// lookups to keep the reported message deterministic.
package validation

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	MsgRequired      = "Required fields must be filled in"
	MsgEmailFormat   = "Please enter a valid email address"
	MsgPhoneFormat   = "Phone Number must be 11 digits and start with 09-"
	MsgPasswordMatch = "Password and Confirm Password do not match"
)

var (
	emailRe = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	phoneRe = regexp.MustCompile(`^09\d{9}$`)
)

// Form holds submitted field names mapped to their raw string values.
type Form map[string]string

// Get returns the value of a field with surrounding whitespace trimmed.
func (f Form) Get(name string) string {
	return strings.TrimSpace(f[name])
}

// Errors maps field names to the single message reported for that field.
type Errors map[string]string

// Add records a message for a field unless one is already present.
func (e Errors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// Ok reports whether the form passed every rule.
func (e Errors) Ok() bool {
	return len(e) == 0
}

// Rule checks one aspect of a form. A returned error means the check itself
// could not run (a failed uniqueness lookup), not that the field is invalid.
type Rule func(f Form, e Errors) error

type RuleSet []Rule

// Apply runs every rule and returns the aggregated field errors.
func (rs RuleSet) Apply(f Form) (Errors, error) {
	errs := Errors{}
	for _, rule := range rs {
		if err := rule(f, errs); err != nil {
			return nil, err
		}
	}
	return errs, nil
}

// Required fails when the trimmed value is empty.
func Required(field string) Rule {
	return func(f Form, e Errors) error {
		if f.Get(field) == "" {
			e.Add(field, MsgRequired)
		}
		return nil
	}
}

// RequiredIf makes field required exactly when the companion field holds the
// sentinel value ("Other" selections with a free-text answer).
func RequiredIf(field, companion, sentinel, message string) Rule {
	return func(f Form, e Errors) error {
		if f.Get(companion) == sentinel && f.Get(field) == "" {
			e.Add(field, message)
		}
		return nil
	}
}

// Email fails when a non-empty value is not shaped like local@domain.tld.
func Email(field string) Rule {
	return func(f Form, e Errors) error {
		if v := f.Get(field); v != "" && !emailRe.MatchString(v) {
			e.Add(field, MsgEmailFormat)
		}
		return nil
	}
}

// Phone fails when a non-empty value, hyphens stripped, is not 11 digits
// starting with 09.
func Phone(field string) Rule {
	return func(f Form, e Errors) error {
		if v := f.Get(field); v != "" && !phoneRe.MatchString(NormalizePhone(v)) {
			e.Add(field, MsgPhoneFormat)
		}
		return nil
	}
}

// PositiveDecimal fails when a non-empty value does not parse as a decimal
// or is not strictly greater than zero. The two cases carry distinct
// messages; label names the field in them.
func PositiveDecimal(field, label string) Rule {
	return func(f Form, e Errors) error {
		v := f.Get(field)
		if v == "" {
			return nil
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.Add(field, label+" must be a number")
		} else if n <= 0 {
			e.Add(field, label+" must be greater than zero")
		}
		return nil
	}
}

// Match fails when both fields are present and unequal. The mismatch is
// reported against confirm only.
func Match(field, confirm, message string) Rule {
	return func(f Form, e Errors) error {
		a, b := f.Get(field), f.Get(confirm)
		if a != "" && b != "" && a != b {
			e.Add(confirm, message)
		}
		return nil
	}
}

// Unique fails when exists reports a colliding record for the submitted
// value. The lookup only reads storage; callers scope it (globally for
// email and phone, per owner for property names) and exclude the record's
// own ID when editing. Empty values are left to Required.
func Unique(field, message string, exists func(value string) (bool, error)) Rule {
	return func(f Form, e Errors) error {
		v := f.Get(field)
		if v == "" {
			return nil
		}
		if _, taken := e[field]; taken {
			// Skip the storage read when the field already failed a
			// cheaper check.
			return nil
		}
		found, err := exists(v)
		if err != nil {
			return err
		}
		if found {
			e.Add(field, message)
		}
		return nil
	}
}

// NormalizePhone strips hyphens, yielding the stored 11-digit form.
func NormalizePhone(v string) string {
	return strings.ReplaceAll(strings.TrimSpace(v), "-", "")
}

// EffectiveChoice resolves an enumeration field against its "Other"
// free-text companion: picking the sentinel stores the free-text answer.
func EffectiveChoice(choice, other, sentinel string) string {
	if strings.TrimSpace(choice) == sentinel {
		return strings.TrimSpace(other)
	}
	return strings.TrimSpace(choice)
}
