package githubapi

import (
	"errors"
	"net/http"

	"github.com/google/go-github/v66/github"
)

// IsPermissionError reports whether err is an authorization or not-found
// class response from the GitHub API. Comment writes fail this way when the
// workflow token lacks comment rights, e.g. on forked-repository triggers,
// and callers treat that as a logged no-op rather than a failure.
func IsPermissionError(err error) bool {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) || ghErr.Response == nil {
		return false
	}

	switch ghErr.Response.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}
