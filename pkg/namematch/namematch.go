// Package namematch compares the full name a doctor typed against the name
// an official registry returned. Registration blocking uses the strict
// exact-after-normalization comparison; a softer edit-distance comparator is
// available for informational matching elsewhere.
package namematch

import "strings"

// Result describes how well a provided name matches the official one.
// Confidence is 1.0 for an exact normalized match; otherwise it is a
// word-overlap ratio kept for diagnostics only.
type Result struct {
	Matches    bool    `json:"matches"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

var accentFold = strings.NewReplacer(
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U", "Ñ", "N",
)

// Normalize upper-cases the name, folds accented vowels and Ñ to base Latin
// letters, strips everything that is not a letter and collapses whitespace.
func Normalize(name string) string {
	upper := accentFold.Replace(strings.ToUpper(strings.TrimSpace(name)))

	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// ExactNormalizedMatch reports whether both names are identical after
// Normalize.
func ExactNormalizedMatch(provided, official string) bool {
	p := Normalize(provided)
	return p != "" && p == Normalize(official)
}

// WordOverlapConfidence counts how many words of provided appear verbatim
// among official's words, divided by provided's word count. Diagnostic only:
// it never turns a mismatch into a match.
func WordOverlapConfidence(provided, official string) float64 {
	providedWords := strings.Fields(Normalize(provided))
	if len(providedWords) == 0 {
		return 0
	}

	officialWords := make(map[string]bool)
	for _, w := range strings.Fields(Normalize(official)) {
		officialWords[w] = true
	}

	found := 0
	for _, w := range providedWords {
		if officialWords[w] {
			found++
		}
	}

	return float64(found) / float64(len(providedWords))
}

// Levenshtein returns the minimum number of single-character insertions,
// deletions and substitutions needed to turn a into b. Classic dynamic
// programming over a (len(a)+1) x (len(b)+1) matrix with unit costs.
func Levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)

	matrix := make([][]int, len(ar)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(br)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(br); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(ar); i++ {
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}

			deletion := matrix[i-1][j] + 1
			insertion := matrix[i][j-1] + 1
			substitution := matrix[i-1][j-1] + cost

			min := deletion
			if insertion < min {
				min = insertion
			}
			if substitution < min {
				min = substitution
			}
			matrix[i][j] = min
		}
	}

	return matrix[len(ar)][len(br)]
}

// SimilarityThreshold is the edit-distance ratio above which two names are
// considered similar for informational matching.
const SimilarityThreshold = 0.8

// EditDistanceSimilarity returns (maxLen - Levenshtein) / maxLen over the
// normalized names: 1.0 for identical names, 0 for nothing in common.
func EditDistanceSimilarity(provided, official string) float64 {
	p, o := Normalize(provided), Normalize(official)
	maxLen := len([]rune(p))
	if l := len([]rune(o)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}

	return float64(maxLen-Levenshtein(p, o)) / float64(maxLen)
}

// Similar reports whether the softer edit-distance comparison considers the
// names equivalent. Not used on the registration-blocking path.
func Similar(provided, official string) bool {
	return EditDistanceSimilarity(provided, official) >= SimilarityThreshold
}

// Compare runs the strict comparison used by license verification: only an
// exact normalized match passes; anything else is a mismatch with a
// word-overlap confidence attached for diagnostics.
func Compare(provided, official string) Result {
	if ExactNormalizedMatch(provided, official) {
		return Result{
			Matches:    true,
			Confidence: 1.0,
			Message:    "El nombre coincide con el registro oficial",
		}
	}

	return Result{
		Matches:    false,
		Confidence: WordOverlapConfidence(provided, official),
		Message:    "El nombre no coincide con el registro oficial",
	}
}
