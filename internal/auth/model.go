package auth

import "time"

// User is a registered account. The password hash is an opaque bcrypt digest
// and never leaves this package.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Credentials is the identity data returned by signup and login. No session
// or token is issued by this service.
type Credentials struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}
