package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	ID         string         `gorm:"type:uuid;primarykey" json:"question_id"`
	QuizID     string         `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Question   string         `gorm:"type:text;not null" json:"question"`
	Answer     string         `gorm:"type:text;not null" json:"-"`
	Options    OptionList     `gorm:"type:text;not null" json:"options"`
	PositionIn int            `gorm:"column:position_in_quiz;not null" json:"position_in_quiz"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
