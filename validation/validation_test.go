package validation

import (
	"errors"
	"testing"
)

func TestRequiredMissingField(t *testing.T) {
	rs := RuleSet{Required("first_name"), Required("last_name")}
	errs, err := rs.Apply(Form{"first_name": "   ", "last_name": "Reyes"})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if errs.Ok() {
		t.Fatal("expected a validation error for blank first_name")
	}
	if errs["first_name"] != MsgRequired {
		t.Fatalf("expected required message, got %q", errs["first_name"])
	}
	if _, ok := errs["last_name"]; ok {
		t.Fatalf("last_name should pass, got %q", errs["last_name"])
	}
}

func TestAllFailuresAggregated(t *testing.T) {
	rs := RuleSet{
		Required("email"),
		Email("email"),
		Required("phone_number"),
		Phone("phone_number"),
	}
	errs, err := rs.Apply(Form{"email": "not-an-email", "phone_number": "12345"})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected both fields to fail, got %v", errs)
	}
	if errs["email"] != MsgEmailFormat {
		t.Fatalf("expected email format message, got %q", errs["email"])
	}
	if errs["phone_number"] != MsgPhoneFormat {
		t.Fatalf("expected phone format message, got %q", errs["phone_number"])
	}
}

func TestRequiredTakesPriorityOverFormat(t *testing.T) {
	rs := RuleSet{Required("email"), Email("email")}
	errs, err := rs.Apply(Form{"email": ""})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if errs["email"] != MsgRequired {
		t.Fatalf("expected required message to win, got %q", errs["email"])
	}
}

func TestPhoneFormats(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"09123456789", true},
		{"0912-345-6789", true},
		{"9123456789", false},
		{"091234567890", false},
		{"08123456789", false},
		{"09-abc-defgh", false},
	}
	for _, tt := range tests {
		rs := RuleSet{Phone("phone_number")}
		errs, err := rs.Apply(Form{"phone_number": tt.value})
		if err != nil {
			t.Fatalf("Apply returned error: %v", err)
		}
		if tt.ok && !errs.Ok() {
			t.Fatalf("expected %q to pass, got %v", tt.value, errs)
		}
		if !tt.ok && errs["phone_number"] != MsgPhoneFormat {
			t.Fatalf("expected %q to fail with phone message, got %v", tt.value, errs)
		}
	}
}

func TestEmailFormats(t *testing.T) {
	for _, bad := range []string{"a", "a@b", "@b.com", "a@.com"} {
		errs, err := RuleSet{Email("email")}.Apply(Form{"email": bad})
		if err != nil {
			t.Fatalf("Apply returned error: %v", err)
		}
		if errs["email"] != MsgEmailFormat {
			t.Fatalf("expected %q to fail email format, got %v", bad, errs)
		}
	}
	errs, err := RuleSet{Email("email")}.Apply(Form{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !errs.Ok() {
		t.Fatalf("expected a@b.com to pass, got %v", errs)
	}
}

func TestPositiveDecimalDistinguishesMessages(t *testing.T) {
	rs := RuleSet{PositiveDecimal("floor_area", "Floor area")}

	errs, err := rs.Apply(Form{"floor_area": "big"})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if errs["floor_area"] != "Floor area must be a number" {
		t.Fatalf("expected numeric message, got %q", errs["floor_area"])
	}

	errs, err = rs.Apply(Form{"floor_area": "-12.5"})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if errs["floor_area"] != "Floor area must be greater than zero" {
		t.Fatalf("expected positive message, got %q", errs["floor_area"])
	}

	errs, err = rs.Apply(Form{"floor_area": "120.50"})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !errs.Ok() {
		t.Fatalf("expected 120.50 to pass, got %v", errs)
	}
}

func TestMatchReportsAgainstConfirmationOnly(t *testing.T) {
	rs := RuleSet{Match("password", "confirm_password", MsgPasswordMatch)}
	errs, err := rs.Apply(Form{"password": "secret1", "confirm_password": "secret2"})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if _, ok := errs["password"]; ok {
		t.Fatal("mismatch must not be reported against the password field")
	}
	if errs["confirm_password"] != MsgPasswordMatch {
		t.Fatalf("expected mismatch message on confirm_password, got %v", errs)
	}
}

func TestRequiredIfOtherSentinel(t *testing.T) {
	rs := RuleSet{RequiredIf("preferred_service_other", "preferred_service", "Other", MsgRequired)}

	errs, err := rs.Apply(Form{"preferred_service": "Other", "preferred_service_other": ""})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if errs["preferred_service_other"] != MsgRequired {
		t.Fatalf("expected free-text field to be required, got %v", errs)
	}

	errs, err = rs.Apply(Form{"preferred_service": "Termite Treatment", "preferred_service_other": ""})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !errs.Ok() {
		t.Fatalf("free-text field must be optional for concrete choices, got %v", errs)
	}
}

func TestUniqueCollision(t *testing.T) {
	rs := RuleSet{
		Unique("email", "Email already registered", func(v string) (bool, error) {
			return v == "taken@b.com", nil
		}),
	}

	errs, err := rs.Apply(Form{"email": "taken@b.com"})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if errs["email"] != "Email already registered" {
		t.Fatalf("expected collision message, got %v", errs)
	}

	errs, err = rs.Apply(Form{"email": "fresh@b.com"})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !errs.Ok() {
		t.Fatalf("expected fresh email to pass, got %v", errs)
	}
}

func TestUniqueSkippedWhenFieldAlreadyFailed(t *testing.T) {
	called := false
	rs := RuleSet{
		Required("email"),
		Email("email"),
		Unique("email", "Email already registered", func(v string) (bool, error) {
			called = true
			return true, nil
		}),
	}
	errs, err := rs.Apply(Form{"email": "not-an-email"})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if called {
		t.Fatal("uniqueness lookup must not run after a format failure")
	}
	if errs["email"] != MsgEmailFormat {
		t.Fatalf("format message must win over uniqueness, got %v", errs)
	}
}

func TestUniqueLookupFailureSurfaces(t *testing.T) {
	lookupErr := errors.New("connection refused")
	rs := RuleSet{
		Unique("email", "Email already registered", func(v string) (bool, error) {
			return false, lookupErr
		}),
	}
	if _, err := rs.Apply(Form{"email": "a@b.com"}); !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error to surface, got %v", err)
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone(" 0912-345-6789 "); got != "09123456789" {
		t.Fatalf("expected hyphens and spaces stripped, got %q", got)
	}
}

func TestEffectiveChoice(t *testing.T) {
	if got := EffectiveChoice("Other", "Bed bugs", "Other"); got != "Bed bugs" {
		t.Fatalf("expected free-text value, got %q", got)
	}
	if got := EffectiveChoice("Rodent Control", "ignored", "Other"); got != "Rodent Control" {
		t.Fatalf("expected enumeration value, got %q", got)
	}
}
