// Package phone validates and normalizes Venezuelan phone numbers. Numbers
// are accepted with or without the 58 country code and normalized to the
// canonical 58XXXXXXXXXX form.
package phone

import "strings"

// Mobile prefixes assigned under the national numbering plan.
var mobilePrefixes = map[string]bool{
	"412": true,
	"414": true,
	"416": true,
	"424": true,
	"426": true,
}

// Normalize strips formatting and the local trunk prefix and returns the
// number in 58XXXXXXXXXX form. ok is false when the input cannot be a
// Venezuelan number at all (wrong length after cleanup).
func Normalize(raw string) (string, bool) {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		} else if r != '+' && r != '-' && r != ' ' && r != '(' && r != ')' && r != '.' {
			return "", false
		}
	}
	n := digits.String()

	switch {
	case strings.HasPrefix(n, "58") && len(n) == 12:
		return n, true
	case strings.HasPrefix(n, "0") && len(n) == 11:
		return "58" + n[1:], true
	case len(n) == 10:
		return "58" + n, true
	}

	return "", false
}

// IsMobile reports whether the normalized number belongs to a mobile
// operator: prefix in {412, 414, 416, 424, 426} followed by 7 digits.
func IsMobile(normalized string) bool {
	if len(normalized) != 12 || !strings.HasPrefix(normalized, "58") {
		return false
	}
	return mobilePrefixes[normalized[2:5]]
}

// IsLandline reports whether the normalized number is a landline: area code
// starting with 2 followed by 9 more digits.
func IsLandline(normalized string) bool {
	if len(normalized) != 12 || !strings.HasPrefix(normalized, "58") {
		return false
	}
	return normalized[2] == '2'
}

// IsValid reports whether raw is a well-formed Venezuelan mobile or landline
// number in any accepted input form.
func IsValid(raw string) bool {
	n, ok := Normalize(raw)
	if !ok {
		return false
	}
	return IsMobile(n) || IsLandline(n)
}
