package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Email     string `gorm:"size:100;not null;uniqueIndex"`
	Password  string `gorm:"size:255;not null"`
	Role      string `gorm:"size:20;default:'customer';not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
