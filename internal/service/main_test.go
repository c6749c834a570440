package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quizgem/internal/model"
)

// newTestDB opens a per-test in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Quiz{},
		&model.Question{},
		&model.History{},
		&model.Answer{},
	))
	return db
}

// seedQuiz inserts a quiz with n questions. Question i has the correct answer
// "answer i" among four options, in quiz order.
func seedQuiz(t *testing.T, db *gorm.DB, topic string, n int) *model.Quiz {
	t.Helper()

	quiz := model.Quiz{Topic: topic}
	for i := 1; i <= n; i++ {
		quiz.Questions = append(quiz.Questions, model.Question{
			Question:   fmt.Sprintf("question %d", i),
			Answer:     fmt.Sprintf("answer %d", i),
			Options:    model.OptionList{fmt.Sprintf("answer %d", i), "wrong a", "wrong b", "wrong c"},
			PositionIn: i,
		})
	}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}
