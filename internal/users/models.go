package users

import "time"

// User is a persisted account row
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public view of a user, safe to return to clients
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Profile returns the public view of u
func (u *User) Profile() *Profile {
	return &Profile{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// Changes is a partial update of a user row. Nil fields are left untouched.
type Changes struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
}

// Empty reports whether c carries no field to update
func (c Changes) Empty() bool {
	return c.FirstName == nil && c.LastName == nil && c.Email == nil && c.PasswordHash == nil
}
