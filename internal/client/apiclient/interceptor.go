package apiclient

import (
	"net/http"
	"strings"
)

const (
	// HeaderAuthorization carries the bearer credential.
	HeaderAuthorization = "Authorization"
	// HeaderContentType is set to application/json on every request.
	HeaderContentType = "Content-Type"

	contentTypeJSON = "application/json"
	bearerScheme    = "Bearer "
)

// LoginPath is where the client is sent after a 401.
const LoginPath = "/login"

// authPathMarkers identify pages on which a 401 must not redirect.
var authPathMarkers = []string{"/login", "/signup"}

// Decorate attaches token to req as a bearer credential and reports whether
// it did. With an empty token any Authorization header is removed, so the
// header is present exactly when a token was.
func Decorate(req *http.Request, token string) bool {
	if token == "" {
		req.Header.Del(HeaderAuthorization)
		return false
	}
	req.Header.Set(HeaderAuthorization, bearerScheme+token)
	return true
}

// Effects are the side effects a failed request requires.
type Effects struct {
	// ClearToken drops the stored session token.
	ClearToken bool
	// RedirectTo is the path to navigate to; empty means stay.
	RedirectTo string
}

// None reports whether no effect is required.
func (e Effects) None() bool {
	return !e.ClearToken && e.RedirectTo == ""
}

// Evaluate decides what a request outcome requires given the current
// location path. Only a 401 has effects: the token is always cleared and the
// client is sent to LoginPath unless it is already on an auth page.
func Evaluate(err error, currentPath string) Effects {
	if err == nil {
		return Effects{}
	}
	status, ok := StatusCode(err)
	if !ok || status != http.StatusUnauthorized {
		return Effects{}
	}
	effects := Effects{ClearToken: true}
	if !IsAuthPath(currentPath) {
		effects.RedirectTo = LoginPath
	}
	return effects
}

// IsAuthPath reports whether path is a login or signup page.
func IsAuthPath(path string) bool {
	for _, marker := range authPathMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}
