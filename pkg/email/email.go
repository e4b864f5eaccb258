package email

import "regexp"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// IsEmailValid checks the string against a pragmatic email pattern. Real
// deliverability is confirmed by the verification email, not here.
func IsEmailValid(s string) bool {
	return len(s) <= 254 && emailPattern.MatchString(s)
}
