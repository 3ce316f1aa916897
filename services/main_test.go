package services

import (
	"lams/models"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see an empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Exam{},
		&models.ExamQuestion{},
		&models.Question{},
		&models.Answer{},
		&models.StudentExam{},
		&models.StudentAnswer{},
		&models.ExamResult{},
		&models.SubscriptionPlan{},
		&models.SubscriptionPlanPackage{},
		&models.UserSubscription{},
		&models.ExamAttempt{},
	))
	return db
}

type fixture struct {
	student uint
	plan    models.SubscriptionPlan
	mapping models.SubscriptionPlanPackage
	sub     models.UserSubscription
	exam    models.Exam
}

// seedEntitlement creates a student with an active subscription on a plan
// allowing maxExams attempts, plus an open-window exam.
func seedEntitlement(t *testing.T, db *gorm.DB, maxExams int) fixture {
	t.Helper()

	student := models.User{Username: "student1", Email: "student1@example.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	plan := models.SubscriptionPlan{Name: "Basic", DurationDays: 30, Price: 99, MaxExams: maxExams, IsActive: true}
	require.NoError(t, db.Create(&plan).Error)

	mapping := models.SubscriptionPlanPackage{SubscriptionID: plan.ID}
	require.NoError(t, db.Create(&mapping).Error)

	sub := models.UserSubscription{
		UserID:                     student.ID,
		SubscriptionPlanPackagesID: mapping.ID,
		StartDate:                  time.Now().Add(-24 * time.Hour),
		EndDate:                    time.Now().Add(29 * 24 * time.Hour),
		Status:                     models.SubscriptionActive,
	}
	require.NoError(t, db.Create(&sub).Error)

	exam := models.Exam{Title: "Algebra Unit Test", DurationMinutes: 60, MaxQuestions: 2, Status: models.ExamActive}
	require.NoError(t, db.Create(&exam).Error)

	return fixture{student: student.ID, plan: plan, mapping: mapping, sub: sub, exam: exam}
}

// seedQuestion attaches a question with one correct and one wrong answer to
// the exam and returns the question and its correct answer id.
func seedQuestion(t *testing.T, db *gorm.DB, examID uint, marks float64) (models.Question, uint) {
	t.Helper()

	q := models.Question{Content: "2+2?", DifficultyLevel: models.DifficultyEasy}
	require.NoError(t, db.Create(&q).Error)

	correct := models.Answer{QuestionID: q.ID, Content: "4", IsCorrect: true}
	wrong := models.Answer{QuestionID: q.ID, Content: "5", IsCorrect: false}
	require.NoError(t, db.Create(&correct).Error)
	require.NoError(t, db.Create(&wrong).Error)

	require.NoError(t, db.Create(&models.ExamQuestion{ExamID: examID, QuestionID: q.ID, Marks: marks}).Error)
	return q, correct.ID
}
