package resolver

import "strings"

// Assemble appends token and expiry to the playlist URL.
// A base already ending in ?b=1 continues its query string, anything else starts a new one.
func Assemble(base, token, expires string, patch bool) string {
	sep := "?"
	if strings.HasSuffix(base, "?b=1") {
		sep = "&"
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString(sep)
	b.WriteString("token=")
	b.WriteString(token)
	b.WriteString("&expires=")
	b.WriteString(expires)

	if patch {
		b.WriteString("&h=1")
	}

	return b.String()
}
