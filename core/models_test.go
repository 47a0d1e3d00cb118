package core

import (
	"testing"
)

func TestFingerprintFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same fingerprint",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "Acme Corp used predictive analytics for demand forecasting across its retail supply chain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp1 := FingerprintFromContent(tt.content)
			fp2 := FingerprintFromContent(tt.content)

			if fp1 != fp2 {
				t.Errorf("FingerprintFromContent() produced different values for same content: %d vs %d", fp1, fp2)
			}
		})
	}
}

func TestFingerprintFromContent_Different(t *testing.T) {
	fp1 := FingerprintFromContent("demand prediction")
	fp2 := FingerprintFromContent("ticket triage")

	if fp1 == fp2 {
		t.Errorf("FingerprintFromContent() produced same value for different content")
	}
}
