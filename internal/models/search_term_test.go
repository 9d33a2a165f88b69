package models

import "testing"

func TestSearchOutcome_Status(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		skipped   bool
		corrected bool
	}{
		{"logged", OutcomeLogged, false, false},
		{"corrected", OutcomeCorrected, false, true},
		{"skipped", OutcomeSkipped, true, false},
		{"empty status", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &SearchOutcome{Status: tt.status}
			if got := o.IsSkipped(); got != tt.skipped {
				t.Errorf("IsSkipped() = %v, want %v", got, tt.skipped)
			}
			if got := o.IsCorrected(); got != tt.corrected {
				t.Errorf("IsCorrected() = %v, want %v", got, tt.corrected)
			}
		})
	}
}

func TestOutcomeConstants(t *testing.T) {
	if OutcomeLogged != "logged" {
		t.Errorf("OutcomeLogged = %q, want %q", OutcomeLogged, "logged")
	}
	if OutcomeCorrected != "corrected" {
		t.Errorf("OutcomeCorrected = %q, want %q", OutcomeCorrected, "corrected")
	}
	if OutcomeSkipped != "skipped" {
		t.Errorf("OutcomeSkipped = %q, want %q", OutcomeSkipped, "skipped")
	}
}
