package models

import "time"

// Image records one uploaded file so the admin media list can show and
// reuse previously uploaded URLs.
type Image struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Path      string `gorm:"size:500;not null"`
	Folder    string `gorm:"size:100"`
	Size      int64  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
