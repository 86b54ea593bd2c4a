package trainer

import (
	"testing"

	"github.com/ColonelBlimp/cwtrainer/internal/morse"
)

func TestCharset_Names(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"letters", len(morse.Letters)},
		{"digits", len(morse.Numbers)},
		{"signs", len(morse.Signs)},
		{"mixed", len(morse.Letters) + len(morse.Numbers) + len(morse.Signs)},
		{"unknown", len(morse.Letters)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Charset(tt.name); len(got) != tt.want {
				t.Errorf("Charset(%q) has %d runes, want %d", tt.name, len(got), tt.want)
			}
		})
	}
}

func TestCharset_AllEncodable(t *testing.T) {
	for _, r := range Charset("mixed") {
		if _, ok := morse.EncodeChar(r); !ok {
			t.Errorf("charset rune %q has no pattern", r)
		}
	}
}

func TestGenerator_Groups(t *testing.T) {
	g := NewGenerator()
	charset := Charset("digits")

	groups := g.Groups(charset, 8, 5)
	if len(groups) != 8 {
		t.Fatalf("Groups() returned %d groups, want 8", len(groups))
	}
	allowed := make(map[rune]struct{}, len(charset))
	for _, r := range charset {
		allowed[r] = struct{}{}
	}
	for _, group := range groups {
		if len([]rune(group)) != 5 {
			t.Errorf("group %q has wrong size", group)
		}
		for _, r := range group {
			if _, ok := allowed[r]; !ok {
				t.Errorf("group %q contains %q outside charset", group, r)
			}
		}
	}
}
