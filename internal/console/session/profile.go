package session

import (
	"strings"
)

// Profile is the normalized user profile persisted with the token. Every
// field is always present in JSON; unknown values are null.
type Profile struct {
	ID    *int64  `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// ProfileFields are the raw identity fields a sign-in can return, plus the
// identifier the user typed.
type ProfileFields struct {
	ID         *int64
	Name       string
	FullName   string
	Email      string
	Role       string
	Identifier string
}

// Normalize builds a Profile with this precedence (blank strings count as
// absent):
//
//	id    ← ID, else null
//	name  ← Name, then FullName, else null
//	email ← Email, then Identifier, else null
//	role  ← Role, else null
func Normalize(f ProfileFields) Profile {
	var p Profile
	if f.ID != nil {
		id := *f.ID
		p.ID = &id
	}
	p.Name = firstNonBlank(f.Name, f.FullName)
	p.Email = firstNonBlank(f.Email, f.Identifier)
	p.Role = firstNonBlank(f.Role)
	return p
}

// DisplayName is what the shell shows for the user: name, then email.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Name != nil {
		return *p.Name
	}
	if p.Email != nil {
		return *p.Email
	}
	return ""
}

func firstNonBlank(values ...string) *string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			s := v
			return &s
		}
	}
	return nil
}
