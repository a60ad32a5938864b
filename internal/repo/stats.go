// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// ResponseStats returns aggregate metadata for an employee's completed
// responses: the number of rows and the greatest LastActivityAt among them.
//
// When the employee has no completed responses, the returned count is 0 and
// latest is nil.
func ResponseStats(ctx context.Context, db *gorm.DB, employeeID string) (count int64, latest *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.SurveyResponse{}).
		Where("employee_id = ? AND status = ?", employeeID, domain.StatusCompleted)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest last_activity_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		LastActivityAt time.Time
	}
	if err = q.Select("last_activity_at").Order("last_activity_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.LastActivityAt, nil
}
