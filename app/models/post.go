package models

import (
	"time"

	"gorm.io/gorm"
)

// Content status values. Posts use draft/published/archived; pages may
// additionally be private (rendered only for logged-in admins).
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
	StatusPrivate   = "PRIVATE"
)

var PostStatuses = []string{StatusDraft, StatusPublished, StatusArchived}

func ValidPostStatus(s string) bool {
	for _, st := range PostStatuses {
		if st == s {
			return true
		}
	}
	return false
}

type Post struct {
	ID              string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Title           string `gorm:"size:255;not null"`
	Slug            string `gorm:"size:255;not null;uniqueIndex"`
	Excerpt         string `gorm:"type:text"`
	Content         string `gorm:"type:longtext"`
	CoverImage      string `gorm:"size:500"`
	Status          string `gorm:"size:20;not null;default:'DRAFT'"`
	MetaTitle       string `gorm:"size:255"`
	MetaDescription string `gorm:"size:500"`
	Keywords        string `gorm:"size:500"`
	Tags            []Tag  `gorm:"many2many:post_tags;"`
	PublishedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

type Tag struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string `gorm:"size:100;not null;uniqueIndex"`
	Slug      string `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
