package controllers

import "testing"

func TestValidateProofFileAcceptsAllowedTypes(t *testing.T) {
	for _, name := range []string{"receipt.jpg", "receipt.JPEG", "scan.png", "transfer.pdf"} {
		if err := validateProofFile(name, 1024); err != nil {
			t.Fatalf("expected %q to be accepted, got %v", name, err)
		}
	}
}

func TestValidateProofFileRejectsOtherTypes(t *testing.T) {
	for _, name := range []string{"receipt.gif", "notes.txt", "archive.zip", "noext"} {
		if err := validateProofFile(name, 1024); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestValidateProofFileSizeCap(t *testing.T) {
	if err := validateProofFile("receipt.jpg", maxProofSize); err != nil {
		t.Fatalf("expected file at the 5 MB cap to be accepted, got %v", err)
	}
	if err := validateProofFile("receipt.jpg", maxProofSize+1); err == nil {
		t.Fatal("expected file over 5 MB to be rejected")
	}
}
