package notify

import "strings"

// DefaultDiffLimit is the character budget for the diff excerpt section.
const DefaultDiffLimit = 3000

// truncationNotice is appended whenever the diff was cut at the budget.
const truncationNotice = "\n... (truncated)"

// Truncate bounds text to maxChars. When cutting is needed the text is
// trimmed back to the last complete line within the budget and annotated;
// if no line boundary exists in the slice, the raw slice is kept rather
// than emitting an empty excerpt.
func Truncate(text string, maxChars int) (string, bool) {
	if maxChars < 0 {
		maxChars = 0
	}
	if len(text) <= maxChars {
		return text, false
	}

	cut := text[:maxChars]
	if idx := strings.LastIndexByte(cut, '\n'); idx > 0 {
		cut = cut[:idx]
	}
	return cut + truncationNotice, true
}
