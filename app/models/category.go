package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name        string `gorm:"size:100;not null;uniqueIndex"`
	Slug        string `gorm:"size:100;not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"size:500"`
	Products    []Product
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
