package domain

import "time"

// User is a registered account. Email is stored lower-cased.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string // argon2 encoded
	Confirmed    bool
	Location     string
	AboutMe      string
	CreatedAt    time.Time // member since
	LastSeen     time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate is a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	Username *string
	Location *string
	AboutMe  *string
}

// Empty reports whether the update would change nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Username == nil && p.Location == nil && p.AboutMe == nil
}

// Apply returns u with the present fields of p written over it.
func (p ProfileUpdate) Apply(u User) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.AboutMe != nil {
		u.AboutMe = *p.AboutMe
	}
	return u
}
