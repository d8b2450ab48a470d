package models

import "time"

// Purpose scopes a verification code: the same email can hold one live code
// per purpose at a time.
const (
	PurposeSignup         = "signup"
	PurposeLogin          = "login"
	PurposeForgotPassword = "forgot-password"
)

// Verification — одна живая запись на пару (email, purpose).
type Verification struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	Purpose   string    `json:"purpose"`
	ExpiresAt time.Time `json:"expires_at"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}
