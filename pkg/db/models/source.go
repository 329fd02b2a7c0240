package models

import (
	"time"

	"gorm.io/gorm"
)

// SourceType identifies which remote adapter a source is served by
type SourceType string

const (
	SourceTypeGoogleDrive SourceType = "GOOGLE_DRIVE"
	SourceTypeLocalFile   SourceType = "LOCAL_FILE"
	SourceTypeAWSS3       SourceType = "AWS_S3"
)

// Label returns the human-readable name of the source type
func (t SourceType) Label() string {
	switch t {
	case SourceTypeGoogleDrive:
		return "Google Drive"
	case SourceTypeLocalFile:
		return "Local File"
	case SourceTypeAWSS3:
		return "AWS S3"
	default:
		return string(t)
	}
}

// Source represents a configured remote origin of card images
type Source struct {
	ID          uint       `gorm:"primaryKey"`
	Key         string     `gorm:"type:text;not null;uniqueIndex"`
	Name        string     `gorm:"type:text;not null;uniqueIndex"`
	DriveID     string     `gorm:"type:text;not null;uniqueIndex"`
	DriveLink   string     `gorm:"type:text"`
	Description string     `gorm:"type:text"`
	Ordinal     int        `gorm:"default:0"`
	SourceType  SourceType `gorm:"type:text;not null;default:GOOGLE_DRIVE"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// SourceSummary aggregates per-source entry counts and average DPI.
// Display-only; the average is not a correctness-critical value.
type SourceSummary struct {
	Cards     int64
	Cardbacks int64
	Tokens    int64
	AvgDPI    int
}

func (s SourceSummary) Total() int64 {
	return s.Cards + s.Cardbacks + s.Tokens
}
