package repository

import (
	"quizgem/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository interface {
	Create(history *model.History) error
	Update(history *model.History) error
	// FindOpen returns the in-progress History for a quiz+account, with its
	// answers preloaded.
	FindOpen(quizID, accountID string) (*model.History, error)
	// FindOpenByID scopes the lookup to a specific game id; used by answer and
	// finish, which must not touch finished games or other accounts' games.
	FindOpenByID(id, quizID, accountID string) (*model.History, error)
	FindFinished(quizID, accountID string) ([]model.History, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(history *model.History) error {
	return r.db.Create(history).Error
}

func (r *historyRepository) Update(history *model.History) error {
	return r.db.Omit(clause.Associations).Save(history).Error
}

func (r *historyRepository) FindOpen(quizID, accountID string) (*model.History, error) {
	var history model.History
	err := r.db.Preload("Answers").
		Where("quiz_id = ? AND account_id = ? AND time_ended IS NULL", quizID, accountID).
		Order("time_started ASC").
		First(&history).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}

func (r *historyRepository) FindOpenByID(id, quizID, accountID string) (*model.History, error) {
	var history model.History
	err := r.db.Preload("Quiz").
		Where("id = ? AND quiz_id = ? AND account_id = ? AND time_ended IS NULL", id, quizID, accountID).
		First(&history).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}

func (r *historyRepository) FindFinished(quizID, accountID string) ([]model.History, error) {
	var histories []model.History
	err := r.db.
		Where("quiz_id = ? AND account_id = ? AND time_ended IS NOT NULL", quizID, accountID).
		Order("time_started ASC").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}
