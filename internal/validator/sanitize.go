package validator

import "strings"

// Sanitize prepares free text for persistence or display: NUL bytes are
// removed, the text is truncated to maxLength runes, control characters other
// than newline and tab are dropped, and surrounding whitespace is trimmed.
// It is a pure string transform with no validation semantics.
func Sanitize(text string, maxLength int) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\x00", "")

	runes := []rune(text)
	if maxLength >= 0 && len(runes) > maxLength {
		runes = runes[:maxLength]
	}

	var sb strings.Builder
	sb.Grow(len(runes))
	for _, r := range runes {
		if r == '\n' || r == '\t' || r >= 32 {
			sb.WriteRune(r)
		}
	}

	return strings.TrimSpace(sb.String())
}
