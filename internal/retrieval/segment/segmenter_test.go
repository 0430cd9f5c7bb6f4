package segment

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplit_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		budget   int
		expected []string
	}{
		{"empty input", "", 1000, nil},
		{"whitespace only", "   \n\t  ", 1000, nil},
		{"fits in one chunk", "short text", 1000, []string{"short text"}},
		{"oversized token kept whole", strings.Repeat("x", 50), 10, []string{strings.Repeat("x", 50)}},
		{"normalizes whitespace", "a  b\nc\t d", 1000, []string{"a b c d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text, tt.budget)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Split() = %#v; want %#v", got, tt.expected)
			}
		})
	}
}

func TestSplit_Deterministic(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 200)

	first := Split(text, 1000)
	second := Split(text, 1000)

	if !reflect.DeepEqual(first, second) {
		t.Error("Split is not deterministic for identical input")
	}
}

func TestSplit_Reconstruction(t *testing.T) {
	text := "The cell   cycle consists of interphase\nand the mitotic phase.\t Mitosis divides the nucleus."

	chunks := Split(text, 20)

	joined := strings.Join(chunks, " ")
	normalized := strings.Join(strings.Fields(text), " ")
	if joined != normalized {
		t.Errorf("joined chunks = %q; want %q", joined, normalized)
	}
}

func TestSplit_NoMidTokenBoundary(t *testing.T) {
	text := strings.Repeat("photosynthesis respiration ", 100)
	tokens := map[string]bool{"photosynthesis": true, "respiration": true}

	for _, chunk := range Split(text, 100) {
		for _, tok := range strings.Fields(chunk) {
			if !tokens[tok] {
				t.Fatalf("chunk boundary split a token: %q", tok)
			}
		}
	}
}

func TestSplit_BudgetedDocument(t *testing.T) {
	// ~2400 chars of 7-char tokens: expect three chunks, two around the
	// budget and a short tail.
	var b strings.Builder
	for b.Len() < 2400 {
		b.WriteString("lecture ")
	}
	text := strings.TrimSpace(b.String())

	chunks := Split(text, 1000)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks[:2] {
		if len(c) < 990 || len(c) > 1010 {
			t.Errorf("chunk %d length %d, want ~1000", i, len(c))
		}
	}
	if len(chunks[2]) >= 1000 {
		t.Errorf("tail chunk length %d, want < 1000", len(chunks[2]))
	}
}
