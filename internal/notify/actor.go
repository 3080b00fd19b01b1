package notify

import "strings"

// IsBotAuthor reports whether a PR author is an automation account, either
// by the account-type flag or the "[bot]" login suffix convention.
func IsBotAuthor(login, accountType string) bool {
	if accountType == "Bot" {
		return true
	}
	return strings.HasSuffix(login, "[bot]")
}
