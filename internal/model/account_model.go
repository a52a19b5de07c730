package model

import "time"

// User represents a row in the users table
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile represents a row in the profiles table
type Profile struct {
	ID       int64  `json:"-"`
	UserID   int64  `json:"-"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ProfilePatch is the partial update of POST /api/profile. Nil fields are
// left untouched.
type ProfilePatch struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

func (p ProfilePatch) Apply(pr *Profile) {
	if p.FullName != nil {
		pr.FullName = *p.FullName
	}
	if p.Email != nil {
		pr.Email = *p.Email
	}
	if p.Phone != nil {
		pr.Phone = *p.Phone
	}
}
