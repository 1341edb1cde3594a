package middleware

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

func TestCustomerLookupStatus(t *testing.T) {
	if got := customerLookupStatus(nil); got != 0 {
		t.Fatalf("expected a loaded row to pass, got %d", got)
	}
	if got := customerLookupStatus(gorm.ErrRecordNotFound); got != fiber.StatusUnauthorized {
		t.Fatalf("a dangling customer reference must read as an expired session, got %d", got)
	}
	if got := customerLookupStatus(errors.New("connection refused")); got != fiber.StatusInternalServerError {
		t.Fatalf("a storage failure must not masquerade as an expired session, got %d", got)
	}
}

func TestExtractCustomerIDFormats(t *testing.T) {
	tests := []struct {
		claims jwt.MapClaims
		want   uint
	}{
		{jwt.MapClaims{"id": float64(42)}, 42},
		{jwt.MapClaims{"id": "42"}, 42},
		{jwt.MapClaims{"id": 42}, 42},
	}
	for _, tt := range tests {
		got, err := extractCustomerID(tt.claims)
		if err != nil {
			t.Fatalf("extractCustomerID(%v) returned error: %v", tt.claims, err)
		}
		if got != tt.want {
			t.Fatalf("extractCustomerID(%v) = %d, want %d", tt.claims, got, tt.want)
		}
	}

	if _, err := extractCustomerID(jwt.MapClaims{}); err == nil {
		t.Fatal("expected missing ID claim to be rejected")
	}
	if _, err := extractCustomerID(jwt.MapClaims{"id": "not-a-number"}); err == nil {
		t.Fatal("expected unparsable ID claim to be rejected")
	}
}
