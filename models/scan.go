package models

import "gorm.io/gorm"

// ScanRecord is the stored result of one label scan. The scoring pipeline
// only writes these; they are read back solely by the history endpoints.
type ScanRecord struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null"`
	ProductName   string
	RawText       string `gorm:"type:text"`
	OCRConfidence float64
	ImageURL      string

	// JSON snapshot of the per-ingredient scores
	IngredientData string `gorm:"type:text"`

	// Nutrition facts parsed off the label, when present
	SugarG   *float64
	SodiumMg *float64
	SatFatG  *float64

	Score      int
	Verdict    string `gorm:"size:16"` // "Good" | "Moderate" | "Bad"
	TopReasons string `gorm:"type:text"`
}
