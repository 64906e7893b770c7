package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

var validRoles = map[string]bool{
	RoleUser:   true,
	RoleSeller: true,
	RoleAdmin:  true,
}

// IsValidRole reports whether role is one of the known user roles.
func IsValidRole(role string) bool {
	return validRoles[role]
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	FirstName    string     `gorm:"column:first_name;not null" json:"first_name"`
	LastName     string     `gorm:"column:last_name;not null" json:"last_name"`
	Sex          string     `gorm:"column:sex;not null" json:"sex"`
	Role         string     `gorm:"column:role;default:user" json:"role"`
	IsVerified   bool       `gorm:"column:is_verified;default:false" json:"is_verified"`
	ProfilePhoto string     `gorm:"column:profile_photo" json:"profile_photo,omitempty"`
	PhoneNumber  string     `gorm:"column:phone_number" json:"phone_number"`
	AddressID    *uuid.UUID `gorm:"column:address_id;type:uuid" json:"address_id"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserDetail is a user joined with its current address. Address is nil when the
// user has none.
type UserDetail struct {
	User
	Address *Address `json:"address"`
}
