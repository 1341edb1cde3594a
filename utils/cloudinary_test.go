package utils

import "testing"

func TestUploadTransformationBoundsImages(t *testing.T) {
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".JPG"} {
		if got := uploadTransformation(ext); got == "" {
			t.Fatalf("expected an image transformation for %q", ext)
		}
	}
}

func TestUploadTransformationLeavesPDFsUntouched(t *testing.T) {
	for _, ext := range []string{".pdf", ".PDF"} {
		if got := uploadTransformation(ext); got != "" {
			t.Fatalf("expected no transformation for %q, got %q", ext, got)
		}
	}
}
