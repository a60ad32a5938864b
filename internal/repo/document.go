package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

const documentBatchSize = 100

// ReadDocument loads the whole store as one Document. Collections are never
// nil.
func ReadDocument(ctx context.Context, db *gorm.DB) (*domain.Document, error) {
	doc := &domain.Document{
		Sessions:  []domain.SurveySession{},
		Responses: []domain.SurveyResponse{},
		Employees: []domain.Employee{},
		Questions: []domain.SurveyQuestion{},
		Users:     []domain.User{},
	}
	q := db.WithContext(ctx)
	steps := []struct {
		name  string
		dest  any
		order string
	}{
		{"sessions", &doc.Sessions, "created_at ASC"},
		{"responses", &doc.Responses, "started_at ASC"},
		{"employees", &doc.Employees, "id ASC"},
		{"questions", &doc.Questions, "sort_order ASC, id ASC"},
		{"users", &doc.Users, "id ASC"},
	}
	for _, s := range steps {
		if err := q.Order(s.order).Find(s.dest).Error; err != nil {
			return nil, fmt.Errorf("read %s: %w", s.name, err)
		}
	}
	for i := range doc.Responses {
		normalizeAnswers(&doc.Responses[i])
	}
	return doc, nil
}

// WriteDocument replaces the whole store with doc in one transaction.
func WriteDocument(ctx context.Context, db *gorm.DB, doc *domain.Document) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []any{&domain.SurveySession{}, &domain.SurveyResponse{}, &domain.Employee{}, &domain.SurveyQuestion{}, &domain.User{}} {
			if err := all.Delete(m).Error; err != nil {
				return fmt.Errorf("clear %T: %w", m, err)
			}
		}

		for i := range doc.Responses {
			normalizeAnswers(&doc.Responses[i])
		}
		if err := insertAll(tx, doc.Employees); err != nil {
			return fmt.Errorf("write employees: %w", err)
		}
		if err := insertAll(tx, doc.Questions); err != nil {
			return fmt.Errorf("write questions: %w", err)
		}
		if err := insertAll(tx, doc.Users); err != nil {
			return fmt.Errorf("write users: %w", err)
		}
		if err := insertAll(tx, doc.Responses); err != nil {
			return fmt.Errorf("write responses: %w", err)
		}
		if err := insertAll(tx, doc.Sessions); err != nil {
			return fmt.Errorf("write sessions: %w", err)
		}
		return nil
	})
}

func insertAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(&rows, documentBatchSize).Error
}
