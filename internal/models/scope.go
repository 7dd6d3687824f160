package models

import "strings"

// OAuth2 scopes understood by the menu API
const (
	ScopeMenuRead  = "menu:read"
	ScopeMenuWrite = "menu:write"
)

// DefaultClientScopes is granted to clients registered without an explicit scope list
const DefaultClientScopes = ScopeMenuRead + " " + ScopeMenuWrite

var knownScopes = map[string]bool{
	ScopeMenuRead:  true,
	ScopeMenuWrite: true,
}

// ParseScopes splits a space-separated scope string, dropping empty entries
func ParseScopes(scope string) []string {
	return strings.Fields(scope)
}

// ValidScopes reports whether every entry of scope is a known scope
func ValidScopes(scope string) bool {
	scopes := ParseScopes(scope)
	if len(scopes) == 0 {
		return false
	}
	for _, s := range scopes {
		if !knownScopes[s] {
			return false
		}
	}
	return true
}

// ScopesAllowed reports whether every requested scope is part of granted
func ScopesAllowed(requested, granted string) bool {
	allowed := make(map[string]bool)
	for _, s := range ParseScopes(granted) {
		allowed[s] = true
	}
	for _, s := range ParseScopes(requested) {
		if !allowed[s] {
			return false
		}
	}
	return true
}

// HasScope reports whether the space-separated scope string contains want
func HasScope(scope, want string) bool {
	for _, s := range ParseScopes(scope) {
		if s == want {
			return true
		}
	}
	return false
}
