package studio

import "testing"

func TestClassifyKeywordPriority(t *testing.T) {
	tests := []struct {
		name    string
		product string
		want    WorkflowType
	}{
		{"set beats dress", "pijama takım elbise", WorkflowSet},
		{"set beats lower", "eşofman takımı pantolon", WorkflowSet},
		{"dress beats lower", "elbise etek kombini", WorkflowDress},
		{"plain lower", "keten pantolon", WorkflowLower},
		{"english lower", "Wide Leg Trousers", WorkflowLower},
		{"turkish dress", "Saten Elbise", WorkflowDress},
		{"english dress", "Evening Gown", WorkflowDress},
		{"coat is full body", "Yün Kaban", WorkflowDress},
		{"no keyword defaults upper", "Verona", WorkflowUpper},
		{"shirt defaults upper", "Oversize Gömlek", WorkflowUpper},
		{"case insensitive", "LINEN TROUSERS", WorkflowLower},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.product, ""); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.product, got, tt.want)
			}
		})
	}
}

func TestClassifyOverride(t *testing.T) {
	// A valid override wins regardless of what the name says.
	if got := Classify("keten pantolon", "dress"); got != WorkflowDress {
		t.Errorf("override dress: got %v", got)
	}
	// An invalid override falls back to keyword classification.
	if got := Classify("keten pantolon", "trousers"); got != WorkflowLower {
		t.Errorf("invalid override: got %v", got)
	}
	if got := Classify("", "set"); got != WorkflowSet {
		t.Errorf("override on empty name: got %v", got)
	}
}
