package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

func ptr(s string) *string { return &s }

// DefaultEmployees is the employee roster seeded into an empty store.
func DefaultEmployees() []domain.Employee {
	return []domain.Employee{
		{
			ID:           "EMP-001",
			Name:         domain.Localized{"fa": "مینا رضایی", "en": "Mina Rezaei", "ar": "مينا رضائي"},
			Department:   domain.Localized{"fa": "منابع انسانی", "en": "Human Resources", "ar": "الموارد البشرية"},
			Active:       true,
			SupervisorID: ptr("SUP-001"),
		},
		{
			ID:           "EMP-002",
			Name:         domain.Localized{"fa": "علی مرادی", "en": "Ali Moradi", "ar": "علي مرادي"},
			Department:   domain.Localized{"fa": "پشتیبانی", "en": "Support", "ar": "الدعم"},
			Active:       true,
			SupervisorID: ptr("SUP-001"),
		},
		{
			ID:           "EMP-003",
			Name:         domain.Localized{"fa": "سارا موسوی", "en": "Sara Mousavi", "ar": "سارة موسوي"},
			Department:   domain.Localized{"fa": "مالی", "en": "Finance", "ar": "المالية"},
			Active:       true,
			SupervisorID: ptr("SUP-002"),
		},
		{
			ID:           "EMP-004",
			Name:         domain.Localized{"fa": "حمید کاظمی", "en": "Hamid Kazemi", "ar": "حميد كاظمي"},
			Department:   domain.Localized{"fa": "فناوری اطلاعات", "en": "IT", "ar": "تقنية المعلومات"},
			Active:       true,
			SupervisorID: ptr("SUP-002"),
		},
		{
			ID:         "EMP-005",
			Name:       domain.Localized{"fa": "نگار احمدی", "en": "Negar Ahmadi", "ar": "نجار أحمدي"},
			Department: domain.Localized{"fa": "امور مشتریان", "en": "Customer Care", "ar": "رعاية العملاء"},
			Active:     true,
		},
	}
}

// DefaultQuestions is the questionnaire seeded into an empty store.
func DefaultQuestions() []domain.SurveyQuestion {
	q := func(id string, order int, typ domain.QuestionType, cat domain.QuestionCategory, primary, required bool, text domain.Localized) domain.SurveyQuestion {
		return domain.SurveyQuestion{
			ID: id, Text: text, Type: typ, Category: cat,
			Required: required, IsPrimary: primary, Order: order, Active: true,
		}
	}
	return []domain.SurveyQuestion{
		q("Q-001", 1, domain.QuestionRating, domain.CategoryGeneral, true, true, domain.Localized{
			"fa": "به طور کلی چقدر از خدمات امروز راضی بودید؟",
			"en": "Overall, how satisfied were you with today's service?",
			"ar": "بشكل عام، ما مدى رضاك عن خدمة اليوم؟",
		}),
		q("Q-002", 2, domain.QuestionRating, domain.CategoryEmployeeSpecific, true, true, domain.Localized{
			"fa": "برخورد کارمند چقدر محترمانه بود؟",
			"en": "How courteous was the employee?",
			"ar": "ما مدى لباقة الموظف؟",
		}),
		q("Q-003", 3, domain.QuestionRating, domain.CategoryEmployeeSpecific, true, true, domain.Localized{
			"fa": "کارمند چقدر به موضوع درخواست شما مسلط بود؟",
			"en": "How knowledgeable was the employee about your request?",
			"ar": "ما مدى إلمام الموظف بطلبك؟",
		}),
		q("Q-004", 4, domain.QuestionRating, domain.CategoryService, true, true, domain.Localized{
			"fa": "سرعت رسیدگی به درخواست شما چگونه بود؟",
			"en": "How would you rate the speed of service?",
			"ar": "كيف تقيم سرعة الخدمة؟",
		}),
		q("Q-005", 5, domain.QuestionRating, domain.CategoryService, true, false, domain.Localized{
			"fa": "چقدر احتمال دارد ما را به دیگران پیشنهاد کنید؟",
			"en": "How likely are you to recommend us to others?",
			"ar": "ما مدى احتمال أن توصي بنا للآخرين؟",
		}),
		q("Q-006", 6, domain.QuestionYesNo, domain.CategoryService, false, false, domain.Localized{
			"fa": "آیا مشکل شما برطرف شد؟",
			"en": "Was your issue resolved?",
			"ar": "هل تم حل مشكلتك؟",
		}),
		q("Q-007", 7, domain.QuestionText, domain.CategoryFeedback, false, false, domain.Localized{
			"fa": "اگر پیشنهادی برای بهبود دارید بنویسید.",
			"en": "Is there anything we could do better?",
			"ar": "هل هناك ما يمكننا تحسينه؟",
		}),
	}
}

// DefaultUsers is the role roster seeded into an empty store.
func DefaultUsers() []domain.User {
	return []domain.User{
		{ID: "ADMIN-001", Name: "Admin", Role: domain.RoleAdmin},
		{ID: "SUP-001", Name: "Supervisor 1", Role: domain.RoleSupervisor},
		{ID: "SUP-002", Name: "Supervisor 2", Role: domain.RoleSupervisor},
	}
}

// Seed fills the employees, survey_questions and users tables with their
// defaults when, and only when, each table is empty. All inserts happen in a
// single transaction, so a failed seed leaves nothing behind.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedIfEmpty(tx, &domain.Employee{}, DefaultEmployees()); err != nil {
			return err
		}
		if err := seedIfEmpty(tx, &domain.SurveyQuestion{}, DefaultQuestions()); err != nil {
			return err
		}
		return seedIfEmpty(tx, &domain.User{}, DefaultUsers())
	})
}

func seedIfEmpty[T any](tx *gorm.DB, model any, rows []T) error {
	var n int64
	if err := tx.Model(model).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 || len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
