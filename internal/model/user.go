package model

import "time"

// User represents an application account as stored in the `users` table.
// Username and email each carry a UNIQUE KEY; PasswordHash is a bcrypt
// digest and must never leave the server.  Profile holds an avatar
// reference or an inline base64-encoded image and may be large.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique login name.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	FirstName    – optional given name.
//	LastName     – optional family name.
//	Mobile       – optional phone number.
//	Address      – optional postal address.
//	Profile      – optional avatar reference or inline image data.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	Mobile       string    // users.mobile
	Address      string    // users.address
	Profile      string    // users.profile
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
