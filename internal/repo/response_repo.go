// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for survey
// responses.
//
// Responses are read and written as whole records. SaveResponse guards every
// write with the record's Version so two concurrent writers cannot silently
// overwrite each other: the loser gets ErrStaleVersion and must reload.
//
// Error semantics:
//   - Missing rows surface as ErrNotFound (gorm.ErrRecordNotFound).
//   - A version mismatch on save surfaces as ErrStaleVersion.
//   - Other DB errors are propagated unchanged.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrStaleVersion is returned by SaveResponse when the stored version no
// longer matches the one the caller loaded.
var ErrStaleVersion = errors.New("stale response version")

func normalizeAnswers(r *domain.SurveyResponse) {
	if r.Answers == nil {
		r.Answers = []domain.SurveyAnswer{}
	}
}

// CreateResponse inserts r as-is. Callers assign the ID and EditToken.
func CreateResponse(ctx context.Context, db *gorm.DB, r *domain.SurveyResponse) error {
	normalizeAnswers(r)
	return db.WithContext(ctx).Create(r).Error
}

// GetResponse fetches a response by id.
func GetResponse(ctx context.Context, db *gorm.DB, id string) (*domain.SurveyResponse, error) {
	var r domain.SurveyResponse
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	normalizeAnswers(&r)
	return &r, nil
}

// ResponseExists reports whether a response with id is stored.
func ResponseExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.SurveyResponse{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// GetResponseByEditToken fetches the response holding token.
func GetResponseByEditToken(ctx context.Context, db *gorm.DB, token string) (*domain.SurveyResponse, error) {
	var r domain.SurveyResponse
	if err := db.WithContext(ctx).Where("edit_token = ?", token).First(&r).Error; err != nil {
		return nil, err
	}
	normalizeAnswers(&r)
	return &r, nil
}

// ListResponsesForPair returns every response of customerID for employeeID,
// most recently started first.
func ListResponsesForPair(ctx context.Context, db *gorm.DB, customerID, employeeID string) ([]domain.SurveyResponse, error) {
	var out []domain.SurveyResponse
	err := db.WithContext(ctx).
		Where("customer_id = ? AND employee_id = ?", customerID, employeeID).
		Order("started_at DESC").
		Find(&out).Error
	for i := range out {
		normalizeAnswers(&out[i])
	}
	return out, err
}

// ListCompletedResponses returns completed responses. With no employeeIDs it
// returns every completed response; otherwise only those for the given
// employees. Time filtering is left to the caller.
func ListCompletedResponses(ctx context.Context, db *gorm.DB, employeeIDs ...string) ([]domain.SurveyResponse, error) {
	q := db.WithContext(ctx).Where("status = ?", domain.StatusCompleted)
	if len(employeeIDs) > 0 {
		q = q.Where("employee_id IN ?", employeeIDs)
	}
	var out []domain.SurveyResponse
	if err := q.Order("started_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	for i := range out {
		normalizeAnswers(&out[i])
	}
	return out, nil
}

// SaveResponse writes every mutable field of r, provided the stored version
// still equals r.Version. On success r.Version is incremented.
func SaveResponse(ctx context.Context, db *gorm.DB, r *domain.SurveyResponse) error {
	normalizeAnswers(r)
	res := db.WithContext(ctx).
		Model(&domain.SurveyResponse{}).
		Where("id = ? AND version = ?", r.ID, r.Version).
		Updates(map[string]any{
			"status":              r.Status,
			"last_activity_at":    r.LastActivityAt.UTC(),
			"completed_at":        r.CompletedAt,
			"last_question_index": r.LastQuestionIndex,
			"lang":                r.Lang,
			"final_comment":       r.FinalComment,
			"answers":             r.Answers,
			"version":             r.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		exists, err := ResponseExists(ctx, db, r.ID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrStaleVersion
	}
	r.Version++
	return nil
}
