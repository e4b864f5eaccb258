// Package masker hides personal data before it reaches logs or audit
// trails. Digits are replaced with X so values stay recognizable in shape
// without being recoverable.
package masker

import "strings"

// Digits replaces every decimal digit in s with 'X'.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune('X')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Email keeps the first character of the local part and the full domain:
// "jperez@clinica.com" becomes "j*****@clinica.com".
func Email(s string) string {
	at := strings.LastIndex(s, "@")
	if at <= 0 {
		return Digits(s)
	}
	local := s[:at]
	masked := local[:1] + strings.Repeat("*", len(local)-1)
	return masked + s[at:]
}

// Document masks a medical document number, keeping the V-/E- prefix:
// "V-12345678" becomes "V-XXXXXXXX".
func Document(s string) string {
	return Digits(s)
}
