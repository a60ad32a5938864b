// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the catalog:
// employees, survey questions and role-bound users.
//
// Catalog records are written whole: callers load a record, mutate it and
// save it back with the matching Save function.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// ListEmployees returns employees ordered by id; activeOnly hides inactive
// ones.
func ListEmployees(ctx context.Context, db *gorm.DB, activeOnly bool) ([]domain.Employee, error) {
	q := db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var out []domain.Employee
	err := q.Order("id ASC").Find(&out).Error
	return out, err
}

// ListTeam returns active employees supervised by supervisorID.
func ListTeam(ctx context.Context, db *gorm.DB, supervisorID string) ([]domain.Employee, error) {
	var out []domain.Employee
	err := db.WithContext(ctx).
		Where("supervisor_id = ? AND active = ?", supervisorID, true).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// GetEmployee fetches an employee by id, or ErrNotFound.
func GetEmployee(ctx context.Context, db *gorm.DB, id string) (*domain.Employee, error) {
	var e domain.Employee
	if err := db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEmployee inserts e.
func CreateEmployee(ctx context.Context, db *gorm.DB, e *domain.Employee) error {
	return db.WithContext(ctx).Create(e).Error
}

// SaveEmployee overwrites every column of e.
func SaveEmployee(ctx context.Context, db *gorm.DB, e *domain.Employee) error {
	return db.WithContext(ctx).Save(e).Error
}

// ListQuestions returns questions by order, then id.
func ListQuestions(ctx context.Context, db *gorm.DB, activeOnly bool) ([]domain.SurveyQuestion, error) {
	q := db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var out []domain.SurveyQuestion
	err := q.Order("sort_order ASC").Order("id ASC").Find(&out).Error
	return out, err
}

// GetQuestion fetches a question by id, or ErrNotFound.
func GetQuestion(ctx context.Context, db *gorm.DB, id string) (*domain.SurveyQuestion, error) {
	var q domain.SurveyQuestion
	if err := db.WithContext(ctx).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateQuestion inserts q.
func CreateQuestion(ctx context.Context, db *gorm.DB, q *domain.SurveyQuestion) error {
	return db.WithContext(ctx).Create(q).Error
}

// SaveQuestion overwrites every column of q.
func SaveQuestion(ctx context.Context, db *gorm.DB, q *domain.SurveyQuestion) error {
	return db.WithContext(ctx).Save(q).Error
}

// CountPrimaryQuestions counts questions flagged primary, ignoring
// excludeID when non-empty.
func CountPrimaryQuestions(ctx context.Context, db *gorm.DB, excludeID string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.SurveyQuestion{}).Where("is_primary = ?", true)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// MaxQuestionOrder returns the highest order in use, or 0 when the catalog
// is empty.
func MaxQuestionOrder(ctx context.Context, db *gorm.DB) (int, error) {
	var row struct{ SortOrder int }
	err := db.WithContext(ctx).Model(&domain.SurveyQuestion{}).
		Select("sort_order").
		Order("sort_order DESC").
		Limit(1).
		Scan(&row).Error
	return row.SortOrder, err
}

// ListUsers returns users ordered by id. excludeAdmins hides admin accounts.
func ListUsers(ctx context.Context, db *gorm.DB, excludeAdmins bool) ([]domain.User, error) {
	q := db.WithContext(ctx)
	if excludeAdmins {
		q = q.Where("role <> ?", domain.RoleAdmin)
	}
	var out []domain.User
	err := q.Order("id ASC").Find(&out).Error
	return out, err
}

// GetUser fetches a user by id, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts u.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return db.WithContext(ctx).Create(u).Error
}

// SaveUser overwrites every column of u.
func SaveUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return db.WithContext(ctx).Save(u).Error
}
