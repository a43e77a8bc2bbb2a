package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/spendlog/spendlog_backend/internal/core/domain"
	"github.com/spendlog/spendlog_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) (models.User, error) {
	history, err := json.Marshal(d.BlockedHistory)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to marshal blocked history: %w", err)
	}
	return models.User{
		UserID:         d.UserID,
		Username:       d.Username,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		PasswordHash:   d.PasswordHash,
		LoginSession:   d.LoginSession,
		IsSuspended:    d.IsSuspended,
		IsBlocked:      d.Blocked.IsBlocked,
		BlockedAt:      d.Blocked.BlockedAt,
		BlockedCount:   d.Blocked.BlockedCount,
		BlockedFor:     d.Blocked.BlockedFor,
		BlockedHistory: history,
		IsDeleted:      d.IsDeleted,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}, nil
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) (domain.User, error) {
	var history []domain.BlockedStatus
	if len(m.BlockedHistory) > 0 {
		if err := json.Unmarshal(m.BlockedHistory, &history); err != nil {
			return domain.User{}, fmt.Errorf("failed to unmarshal blocked history: %w", err)
		}
	}
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PasswordHash: m.PasswordHash,
		LoginSession: m.LoginSession,
		IsSuspended:  m.IsSuspended,
		Blocked: domain.BlockedStatus{
			IsBlocked:    m.IsBlocked,
			BlockedAt:    m.BlockedAt,
			BlockedCount: m.BlockedCount,
			BlockedFor:   m.BlockedFor,
		},
		BlockedHistory: history,
		IsDeleted:      m.IsDeleted,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}, nil
}
