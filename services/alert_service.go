package services

import (
	"log"
	"time"

	"github.com/Anuraj-27/nutriscan27/config"
	"github.com/Anuraj-27/nutriscan27/models"
)

// EmitAlert records an alert for the user; safe to call anywhere.
func EmitAlert(userID uint, typ, message string) {
	if config.DB == nil {
		return // not initialized
	}
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	if err := config.DB.Create(a).Error; err != nil {
		log.Printf("failed to store alert for user %d: %v", userID, err)
	}
}

func ListAlerts(userID uint, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 20
	}
	var alerts []models.Alert
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}
