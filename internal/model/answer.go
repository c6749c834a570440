package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer records one submission in a game. The composite unique index rejects
// a second answer for the same question within the same History.
type Answer struct {
	ID         string    `gorm:"type:uuid;primarykey" json:"answer_id"`
	HistoryID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_answers_history_question" json:"history_id"`
	QuestionID string    `gorm:"type:uuid;not null;uniqueIndex:idx_answers_history_question" json:"question_id"`
	Question   Question  `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	UserAnswer string    `gorm:"type:text;not null" json:"user_answer"`
	IsCorrect  bool      `gorm:"not null" json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
