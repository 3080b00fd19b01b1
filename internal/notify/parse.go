package notify

import "strings"

// ParseUniqueLines splits text on any line-ending convention, trims each
// line, and drops empty lines and duplicates. First-seen order is preserved.
// Total on any input; an empty input yields an empty list.
func ParseUniqueLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	seen := make(map[string]struct{})
	var out []string
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}

// SplitChecks parses a comma- or newline-delimited list of validation check
// names.
func SplitChecks(text string) []string {
	return ParseUniqueLines(strings.ReplaceAll(text, ",", "\n"))
}
