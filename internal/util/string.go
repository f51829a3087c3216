package util

// TruncateString shortens a string to maxRunes runes, appending "..." when
// anything was cut. Used to keep model output previews out of log spam.
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}
