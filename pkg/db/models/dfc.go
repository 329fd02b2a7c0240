package models

// DFCPair maps the front face name of a double-faced card to its back face.
// Reference data owned by the configured game integration; immutable within
// a sync run.
type DFCPair struct {
	ID              uint   `gorm:"primaryKey"`
	Front           string `gorm:"type:text;not null;uniqueIndex"`
	FrontSearchable string `gorm:"type:text;not null;uniqueIndex"`
	Back            string `gorm:"type:text;not null;uniqueIndex"`
	BackSearchable  string `gorm:"type:text;not null;uniqueIndex"`
}

// MeldPair maps one meld part to the combined card it melds into.
// Unlike DFCPair, multiple parts may share the same result.
type MeldPair struct {
	ID               uint   `gorm:"primaryKey"`
	Part             string `gorm:"type:text;not null;uniqueIndex"`
	PartSearchable   string `gorm:"type:text;not null;uniqueIndex"`
	Result           string `gorm:"type:text;not null"`
	ResultSearchable string `gorm:"type:text;not null"`
}
