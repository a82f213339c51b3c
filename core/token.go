package core

import "strings"

// Token is an opaque bearer credential granting write access to forecasts
type Token string

// ParseAuthorization extracts a token from an Authorization header value.
// Both a bare token and the "Bearer <token>" form are accepted.
func ParseAuthorization(header string) Token {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		header = strings.TrimSpace(header[7:])
	}
	return Token(header)
}

// String returns the token as sent on the wire
func (t Token) String() string {
	return string(t)
}
