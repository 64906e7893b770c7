package domain

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;index;not null" json:"user_id"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;index;not null" json:"product_id"`
	Rating     int       `gorm:"column:rating;not null;default:0" json:"rating"`
	ReviewText string    `gorm:"column:review_text;type:text;not null" json:"review_text"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
