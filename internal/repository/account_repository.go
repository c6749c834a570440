package repository

import (
	"quizgem/internal/model"

	"gorm.io/gorm"
)

type AccountRepository interface {
	FindByID(id string) (*model.Account, error)
	Create(account *model.Account) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindByID(id string) (*model.Account, error) {
	var account model.Account
	if err := r.db.Preload("User").First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Create(account *model.Account) error {
	// Creates the associated User row as well when account.User is populated.
	return r.db.Create(account).Error
}
