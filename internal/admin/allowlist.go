// Package admin holds the single authorization capability gating catalog
// management. Every handler that needs an admin check consumes this type
// rather than comparing emails inline.
package admin

import "strings"

// Allowlist is the fixed set of administrator email addresses. Membership is
// decided by case-insensitive equality.
type Allowlist struct {
	emails map[string]struct{}
}

// NewAllowlist builds an allowlist from the configured emails. Entries are
// folded to lower case once at construction.
func NewAllowlist(emails []string) *Allowlist {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		set[strings.ToLower(e)] = struct{}{}
	}
	return &Allowlist{emails: set}
}

// IsAdmin reports whether the given email belongs to an administrator. The
// comparison is case-insensitive; an empty email is never an admin.
func (a *Allowlist) IsAdmin(email string) bool {
	if email == "" {
		return false
	}
	_, ok := a.emails[strings.ToLower(email)]
	return ok
}
