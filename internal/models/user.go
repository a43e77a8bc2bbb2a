package models

import "time"

// User mirrors the users table. The lockout columns are flattened onto the
// row; blocked_history is a JSONB array of past episodes.
type User struct {
	UserID         string     `db:"user_id"`
	Username       string     `db:"username"`
	FirstName      string     `db:"first_name"`
	LastName       string     `db:"last_name"`
	PasswordHash   string     `db:"password_hash"`
	LoginSession   *string    `db:"login_session"`
	IsSuspended    bool       `db:"is_suspended"`
	IsBlocked      bool       `db:"is_blocked"`
	BlockedAt      *time.Time `db:"blocked_at"`
	BlockedCount   int        `db:"blocked_count"`
	BlockedFor     int64      `db:"blocked_for"`
	BlockedHistory []byte     `db:"blocked_history"`
	IsDeleted      bool       `db:"is_deleted"`
	AuditFields
}
