package genai

import "strings"

// Sanitize strips conversational and markdown wrapping from raw model output
// and extracts the minimal JSON object span. A leading ```json or ``` fence
// and a trailing ``` fence are removed, the text is trimmed, and everything
// outside the first '{' and the last '}' is discarded. If no brace pair
// exists the trimmed text is returned unchanged; the caller's JSON parse will
// then fail and be handled as malformed output.
//
// Sanitize is pure and idempotent: Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	s = strings.TrimSpace(s)

	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first != -1 && last != -1 && last > first {
		return s[first : last+1]
	}
	return s
}
