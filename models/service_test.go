package models

import "testing"

func TestWorkflowHappyPath(t *testing.T) {
	s := Service{Status: StatusForInspection}
	path := []ServiceStatus{StatusPendingPayment, StatusScheduled, StatusInProgress, StatusCompleted}
	for _, next := range path {
		if !s.CanTransition(next) {
			t.Fatalf("expected transition %s -> %s to be allowed", s.Status, next)
		}
		s.Status = next
	}
}

func TestWorkflowRejectsSkippedSteps(t *testing.T) {
	tests := []struct {
		from ServiceStatus
		to   ServiceStatus
	}{
		{StatusForInspection, StatusScheduled},
		{StatusForInspection, StatusCompleted},
		{StatusPendingPayment, StatusInProgress},
		{StatusScheduled, StatusCompleted},
		{StatusScheduled, StatusPendingPayment},
	}
	for _, tt := range tests {
		s := Service{Status: tt.from}
		if s.CanTransition(tt.to) {
			t.Fatalf("transition %s -> %s must be rejected", tt.from, tt.to)
		}
	}
}

func TestCancelledReachableFromNonTerminalStates(t *testing.T) {
	for _, from := range []ServiceStatus{StatusForInspection, StatusPendingPayment, StatusScheduled, StatusInProgress} {
		s := Service{Status: from}
		if !s.CanTransition(StatusCancelled) {
			t.Fatalf("expected %s to be cancellable", from)
		}
	}
}

func TestTerminalStatesAllowNothing(t *testing.T) {
	all := []ServiceStatus{
		StatusForInspection, StatusPendingPayment, StatusScheduled,
		StatusInProgress, StatusCompleted, StatusCancelled,
	}
	for _, from := range []ServiceStatus{StatusCompleted, StatusCancelled} {
		s := Service{Status: from}
		for _, to := range all {
			if s.CanTransition(to) {
				t.Fatalf("terminal state %s must not transition to %s", from, to)
			}
		}
	}
}

func TestValidTimeSlot(t *testing.T) {
	if len(TimeSlots) != 8 {
		t.Fatalf("expected eight bookable windows, got %d", len(TimeSlots))
	}
	for _, slot := range TimeSlots {
		if !ValidTimeSlot(slot) {
			t.Fatalf("expected %s to be bookable", slot)
		}
	}
	if ValidTimeSlot("12:00-13:00") {
		t.Fatal("lunch hour must not be bookable")
	}
}

func TestValidPropertyType(t *testing.T) {
	for _, pt := range []PropertyType{
		PropertyResidential, PropertyCommercial, PropertyIndustrial,
		PropertyAgricultural, PropertyMixedUse,
	} {
		if !ValidPropertyType(pt) {
			t.Fatalf("expected %s to be valid", pt)
		}
	}
	if ValidPropertyType("Castle") {
		t.Fatal("unknown property type must be rejected")
	}
}
