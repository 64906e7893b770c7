package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string     `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Description      string     `gorm:"column:description;type:text" json:"description"`
	ParentCategoryID *uuid.UUID `gorm:"column:parent_category_id;type:uuid" json:"parent_category_id"`
	CreatedBy        string     `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedBy        string     `gorm:"column:updated_by" json:"updated_by,omitempty"`
	UpdatedAt        time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
