package models

import "encoding/json"

// Role is a user's access level.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAnalyst Role = "analyst"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

type User struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Mobile string `json:"mobile,omitempty"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// UnmarshalJSON takes the id from "_id" when "id" is missing.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var aux struct {
		plain
		DocID ID `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.DocID
	}
	return nil
}

// NewUser is the payload of the signup endpoint, also used to create users
// from the user-management view.
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// RoleOption is an entry of the role picker.
type RoleOption struct {
	Value Role   `json:"value"`
	Label string `json:"label"`
}
