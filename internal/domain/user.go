package domain

// User is a persisted account record. Passwords are stored as bcrypt
// hashes; the clear text never leaves the service layer.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:255;not null"`
	Email        string `gorm:"size:255"`
	PasswordHash string `gorm:"size:255;not null"`
}

// PublicUser is the reduced projection of a User returned on read paths.
type PublicUser struct {
	Username string
	Email    string
}

// Public projects the user into its read-path representation.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		Username: u.Username,
		Email:    u.Email,
	}
}
