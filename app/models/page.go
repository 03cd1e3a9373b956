package models

import (
	"time"

	"gorm.io/gorm"
)

var PageStatuses = []string{StatusDraft, StatusPublished, StatusArchived, StatusPrivate}

func ValidPageStatus(s string) bool {
	for _, st := range PageStatuses {
		if st == s {
			return true
		}
	}
	return false
}

type Page struct {
	ID              string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Title           string `gorm:"size:255;not null"`
	Slug            string `gorm:"size:255;not null;uniqueIndex"`
	Content         string `gorm:"type:longtext"`
	Status          string `gorm:"size:20;not null;default:'DRAFT'"`
	MetaTitle       string `gorm:"size:255"`
	MetaDescription string `gorm:"size:500"`
	Keywords        string `gorm:"size:500"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
