package models

import "time"

// CardBase holds the fields shared by all three catalog entry types.
// Entries are destroyed and recreated in bulk on each sync of their source,
// never updated in place.
type CardBase struct {
	ID       uint   `gorm:"primaryKey"`
	DriveID  string `gorm:"type:text;not null;uniqueIndex"`
	Name     string `gorm:"type:text;not null"`
	Priority int    `gorm:"default:0"`
	SourceID uint   `gorm:"not null;index"`

	// Denormalized source display label, e.g. "Example Drive Tokens"
	SourceVerbose string `gorm:"type:text"`

	DPI            int    `gorm:"default:0"`
	Searchq        string `gorm:"type:text;index"`
	SearchqKeyword string `gorm:"type:text;index"`
	Extension      string `gorm:"type:text"`
	Date           time.Time
	Size           int64 `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Card represents a front-face card image
type Card struct {
	CardBase

	Source Source `gorm:"foreignKey:SourceID;constraint:OnDelete:CASCADE"`
}

// Cardback represents a card back image
type Cardback struct {
	CardBase

	Source Source `gorm:"foreignKey:SourceID;constraint:OnDelete:CASCADE"`
}

// Token represents a token image
type Token struct {
	CardBase

	Source Source `gorm:"foreignKey:SourceID;constraint:OnDelete:CASCADE"`
}
