package domain

import "time"

// BlockedStatus is the lockout state of an account. BlockedFor is expressed
// in seconds; a zero value means no window is pending.
type BlockedStatus struct {
	IsBlocked    bool       `json:"isBlocked"`
	BlockedAt    *time.Time `json:"blockedAt"`
	BlockedCount int        `json:"blockedCount"`
	BlockedFor   int64      `json:"blockedFor"`
}

// WindowElapsed reports whether the lockout window has lapsed as of now.
// An unset BlockedAt counts as elapsed so a half-written state can never
// lock an account forever.
func (b BlockedStatus) WindowElapsed(now time.Time) bool {
	if !b.IsBlocked {
		return true
	}
	if b.BlockedAt == nil {
		return true
	}
	return !now.Before(b.BlockedAt.Add(time.Duration(b.BlockedFor) * time.Second))
}

// RemainingSeconds returns how long the active window still holds. Zero when
// not blocked or already lapsed.
func (b BlockedStatus) RemainingSeconds(now time.Time) int64 {
	if !b.IsBlocked || b.BlockedAt == nil {
		return 0
	}
	remaining := b.BlockedAt.Add(time.Duration(b.BlockedFor) * time.Second).Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int64(remaining / time.Second)
}

// UserProfilePatch is the only shape the profile-update path accepts.
// Credential, suspension, session, lockout, and soft-delete fields are
// structurally absent, so they can never be set through it.
type UserProfilePatch struct {
	FirstName *string
	LastName  *string
	Username  *string
}

// User represents an account holder. PasswordHash and the session/lockout
// fields never travel past the DTO boundary.
type User struct {
	UserID         string          `json:"userID"`
	Username       string          `json:"username"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	PasswordHash   string          `json:"-"`
	LoginSession   *string         `json:"-"`
	IsSuspended    bool            `json:"-"`
	Blocked        BlockedStatus   `json:"-"`
	BlockedHistory []BlockedStatus `json:"-"`
	IsDeleted      bool            `json:"-"`
	AuditFields
}
