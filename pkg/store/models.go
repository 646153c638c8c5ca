package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence.
type BlogModel struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string `gorm:"not null"`
	Content     string `gorm:"not null"`
	CoverImage  string
	Tags        datatypes.JSON `gorm:"type:jsonb"`
	Author      string         `gorm:"not null"`
	Published   bool           `gorm:"not null;index"`
	Featured    bool           `gorm:"not null;index"`
	ReadingTime int            `gorm:"not null"`
	Views       int64          `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"not null;index"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

func (BlogModel) TableName() string { return "blogs" }

type NoteModel struct {
	ID           string `gorm:"primaryKey"`
	Title        string `gorm:"not null"`
	Description  string
	Filename     string `gorm:"not null"`
	OriginalName string `gorm:"not null"`
	ContentType  string `gorm:"not null"`
	SizeBytes    int64  `gorm:"not null"`
	Pages        int
	Category     string         `gorm:"index"`
	Tags         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"not null;index"`
}

func (NoteModel) TableName() string { return "notes" }
