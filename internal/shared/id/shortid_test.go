package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantLen int
	}{
		{"default length for zero", 0, DefaultLength},
		{"default length for negative", -5, DefaultLength},
		{"explicit length", 16, 16},
		{"short length", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.length)
			if err != nil {
				t.Fatalf("Generate(%d) unexpected error: %v", tt.length, err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("Generate(%d) length = %d, want %d", tt.length, len(got), tt.wantLen)
			}
			for _, r := range got {
				if !strings.ContainsRune(alphabet, r) {
					t.Errorf("Generate(%d) produced character %q outside alphabet", tt.length, r)
				}
			}
		})
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := MustGenerate(16)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}
