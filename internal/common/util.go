package common

import "strings"

// ExtractToken returns the token carried in an authorization header value.
// Both the bare token and the "Bearer <token>" form are accepted; the scheme
// match is case-insensitive. An empty string means no token was presented.
func ExtractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= len(BearerPrefix) && strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return strings.TrimSpace(header[len(BearerPrefix):])
	}
	return header
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used for passwords read from the terminal. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
