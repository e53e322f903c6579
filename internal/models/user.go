package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	FirstName      string    `json:"firstName,omitempty"`
	LastName       string    `json:"lastName,omitempty"`
	FullName       string    `json:"fullName,omitempty"`
	Role           Role      `json:"role"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Language       string    `json:"language,omitempty"`
	PhoneNumber    string    `json:"phoneNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Profile is the part of a user account its owner may change.
type Profile struct {
	FirstName      string
	LastName       string
	FullName       string
	ProfilePicture string
	Language       string
	PhoneNumber    string
}
