package repository

import (
	"quizgem/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository interface {
	Create(answer *model.Answer) error
	CountCorrect(historyID string) (int64, error)
	ExistsForQuestion(historyID, questionID string) (bool, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(answer *model.Answer) error {
	return r.db.Create(answer).Error
}

func (r *answerRepository) CountCorrect(historyID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Answer{}).
		Where("history_id = ? AND is_correct = ?", historyID, true).
		Count(&count).Error
	return count, err
}

func (r *answerRepository) ExistsForQuestion(historyID, questionID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Answer{}).
		Where("history_id = ? AND question_id = ?", historyID, questionID).
		Count(&count).Error
	return count > 0, err
}
