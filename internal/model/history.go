package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// History is one playthrough of a Quiz by an Account. TimeEnded is nil while
// the game is in progress; Score is set only once the game is finished.
type History struct {
	ID          string     `gorm:"type:uuid;primarykey" json:"game_id"`
	QuizID      string     `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz        Quiz       `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	AccountID   string     `gorm:"not null;index" json:"account_id"`
	TimeStarted time.Time  `gorm:"not null" json:"time_started"`
	TimeEnded   *time.Time `json:"time_ended,omitempty"`
	Score       *float64   `json:"score,omitempty"`
	Answers     []Answer   `gorm:"foreignKey:HistoryID" json:"answers,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (h *History) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
