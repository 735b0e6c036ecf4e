package models

// Admin defines an administrator account based on the 'admins' table.
// Accounts are created by the seed routine and are immutable afterwards.
type Admin struct {
	ID           int64  `json:"id" db:"id" example:"1"`
	Username     string `json:"username" db:"username" example:"super"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         Role   `json:"role" db:"role" example:"super"`
}
