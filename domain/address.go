package domain

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;index;not null" json:"user_id"`
	StreetAddress string    `gorm:"column:street_address;not null" json:"street_address"`
	City          string    `gorm:"column:city;not null" json:"city"`
	State         string    `gorm:"column:state" json:"state"`
	PostalCode    string    `gorm:"column:postal_code;not null" json:"postal_code"`
	Country       string    `gorm:"column:country;not null" json:"country"`
	IsDefault     bool      `gorm:"column:is_default;default:false" json:"is_default"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Address) TableName() string {
	return "addresses"
}

// Billing mirrors the address fields of a user's default address.
type Billing struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex;not null" json:"user_id"`
	StreetAddress string    `gorm:"column:street_address;not null" json:"street_address"`
	City          string    `gorm:"column:city;not null" json:"city"`
	State         string    `gorm:"column:state" json:"state"`
	PostalCode    string    `gorm:"column:postal_code;not null" json:"postal_code"`
	Country       string    `gorm:"column:country;not null" json:"country"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Billing) TableName() string {
	return "billings"
}

// CopyFrom overwrites the address fields of b with those of a.
func (b *Billing) CopyFrom(a Address) {
	b.StreetAddress = a.StreetAddress
	b.City = a.City
	b.State = a.State
	b.PostalCode = a.PostalCode
	b.Country = a.Country
}
