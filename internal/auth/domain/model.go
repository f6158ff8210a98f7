package domain

import "errors"

// Identity is the signed-in user's profile data. It is created at
// login or registration, mirrored into the session store so a reload
// keeps the user signed in, and destroyed on logout. It is a UI-level
// stand-in, not a security boundary.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
)
