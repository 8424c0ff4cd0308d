package domain

import "strings"

// Principal is the authenticated identity for the current session. A new
// sign-in produces a new Principal; it is never mutated in place.
type Principal struct {
	ID          string
	DisplayName string
	Email       string
	PhotoURL    string
	RawToken    string
}

func (p Principal) FirstName() string {
	parts := strings.Fields(p.DisplayName)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
