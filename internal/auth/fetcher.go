package auth

import (
	"time"

	"github.com/ContactDesk/CD-Backend/internal/db"
	"github.com/ContactDesk/CD-Backend/internal/utils"
)

type SessionInfo struct{}

func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	var session Session

	err := db.DB.First(&session, "session_id = ?", id).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (si SessionInfo) RefreshSession(id string, expiresAt time.Time) error {
	return db.DB.Model(&Session{}).
		Where("session_id = ?", id).
		Update("expires_at", expiresAt).Error
}
