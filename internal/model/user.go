package model

import "time"

// User is a credential-store record. It is written once by the seed
// step and only read at runtime.
type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// UserView is the redacted shape returned to clients. The password
// hash never crosses this boundary.
type UserView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// View returns the client-facing projection of a user.
func (u *User) View() *UserView {
	return &UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}
