package model

import "time"

// Account is keyed by the identity provider's subject id, so the ID is
// assigned by the caller rather than generated.
type Account struct {
	ID        string    `gorm:"primarykey" json:"account_id"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email"`
	UserID    string    `gorm:"type:uuid;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
