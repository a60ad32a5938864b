package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// CreateSession inserts s. Sessions are immutable once written.
func CreateSession(ctx context.Context, db *gorm.DB, s *domain.SurveySession) error {
	return db.WithContext(ctx).Create(s).Error
}

// GetSession fetches a session by id, or ErrNotFound.
func GetSession(ctx context.Context, db *gorm.DB, id string) (*domain.SurveySession, error) {
	var s domain.SurveySession
	if err := db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// SessionExists reports whether a session with id is stored.
func SessionExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.SurveySession{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
