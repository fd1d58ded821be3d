package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	FullName string

	// Health profile used for personalized scoring
	Birthday        time.Time
	Allergies       string  // comma-separated, e.g. "peanut,milk"
	HasDiabetes     bool
	DiabetesMeasure string  // "hba1c" | "fasting_glucose" | ""
	DiabetesValue   float64 // 0 = not provided
	SystolicBP      int     // 0 = not provided
	DiastolicBP     int     // 0 = not provided
}
