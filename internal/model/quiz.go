package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quiz topics are stored lowercase; display casing is applied at the read
// boundary by the services.
type Quiz struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"quiz_id"`
	Topic     string         `gorm:"not null;index" json:"topic"`
	Questions []Question     `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
