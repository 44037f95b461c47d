package domain

import "time"

// User учётная запись; ядро бронирования видит только ID
type User struct {
	ID           string
	Email        string
	PasswordHash string
	// LegacyPassword пароль в открытом виде из старой базы.
	// Очищается при первом успешном входе, после чего остаётся только PasswordHash
	LegacyPassword *string
	CreatedAt      time.Time
}

// NeedsPasswordMigration returns true if the user still has a plaintext password
func (u *User) NeedsPasswordMigration() bool {
	return u.PasswordHash == "" && u.LegacyPassword != nil
}
