package httpx

import "html"

// Sanitize escapes HTML so stored text renders inert in the frontend.
func Sanitize(s string) string {
	return html.EscapeString(s)
}

func SanitizeAll(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Sanitize(s)
	}
	return out
}
