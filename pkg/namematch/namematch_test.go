package namematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"JUAN PÉREZ", "JUAN PEREZ"},
		{"  maría   gonzález  ", "MARIA GONZALEZ"},
		{"Núñez", "NUNEZ"},
		{"Dr. Juan Pérez-García", "DR JUAN PEREZGARCIA"},
		{"", ""},
		{"1234", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestCompareAccentInsensitiveExactMatch(t *testing.T) {
	got := Compare("JUAN PÉREZ", "JUAN PEREZ")

	assert.True(t, got.Matches)
	assert.Equal(t, 1.0, got.Confidence)
}

func TestCompareMismatchHasDiagnosticConfidence(t *testing.T) {
	got := Compare("JUAN PEREZ", "JUAN CARLOS PEREZ")

	assert.False(t, got.Matches)
	// Both provided words appear in the official name, but exact match is
	// still required on the blocking path.
	assert.Greater(t, got.Confidence, 0.0)
	assert.LessOrEqual(t, got.Confidence, 1.0)
}

func TestCompareNothingInCommon(t *testing.T) {
	got := Compare("PEDRO LOPEZ", "JUAN PEREZ")

	assert.False(t, got.Matches)
	assert.Equal(t, 0.0, got.Confidence)
}

func TestCompareEmptyProvidedNeverMatches(t *testing.T) {
	got := Compare("", "")
	assert.False(t, got.Matches)
}

func TestWordOverlapConfidence(t *testing.T) {
	assert.Equal(t, 1.0, WordOverlapConfidence("JUAN PEREZ", "JUAN CARLOS PEREZ"))
	assert.Equal(t, 0.5, WordOverlapConfidence("JUAN LOPEZ", "JUAN PEREZ"))
	assert.Equal(t, 0.0, WordOverlapConfidence("", "JUAN PEREZ"))
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "ABC", 3},
		{"ABC", "", 3},
		{"ABC", "ABC", 0},
		{"KITTEN", "SITTING", 3},
		{"PEREZ", "PERES", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "Levenshtein(%q, %q)", tt.a, tt.b)
	}
}

func TestEditDistanceSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, EditDistanceSimilarity("JUAN PÉREZ", "JUAN PEREZ"))
	assert.Equal(t, 0.0, EditDistanceSimilarity("", ""))

	// One substitution over ten characters.
	sim := EditDistanceSimilarity("JUAN PEREZ", "JUAN PERES")
	assert.InDelta(t, 0.9, sim, 0.001)
}

func TestSimilar(t *testing.T) {
	assert.True(t, Similar("JUAN PEREZ", "JUAN PERES"))
	assert.False(t, Similar("JUAN PEREZ", "PEDRO RAMIREZ"))
}
