package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Anuraj-27/nutriscan27/config"
	"github.com/Anuraj-27/nutriscan27/utils"
)

// ProfileInput is the partial-update payload for the health profile.
// Pointer fields distinguish "leave unchanged" from explicit zero values.
type ProfileInput struct {
	FullName        *string  `json:"full_name"`
	Birthday        *string  `json:"birthday"` // YYYY-MM-DD
	Allergies       []string `json:"allergies"`
	HasDiabetes     *bool    `json:"has_diabetes"`
	DiabetesMeasure *string  `json:"diabetes_measure"`
	DiabetesValue   *float64 `json:"diabetes_value"`
	SystolicBP      *int     `json:"blood_pressure_systolic"`
	DiastolicBP     *int     `json:"blood_pressure_diastolic"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	user, err := FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	age := 0
	birthday := ""
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
		birthday = user.Birthday.Format("2006-01-02")
	}

	allergies := []string{}
	for _, a := range strings.Split(user.Allergies, ",") {
		if a = strings.TrimSpace(a); a != "" {
			allergies = append(allergies, a)
		}
	}

	return map[string]interface{}{
		"id":                       user.ID,
		"email":                    user.Email,
		"full_name":                user.FullName,
		"birthday":                 birthday,
		"age":                      age,
		"allergies":                allergies,
		"has_diabetes":             user.HasDiabetes,
		"diabetes_measure":         user.DiabetesMeasure,
		"diabetes_value":           user.DiabetesValue,
		"blood_pressure_systolic":  user.SystolicBP,
		"blood_pressure_diastolic": user.DiastolicBP,
	}, nil
}

func UpdateUserProfile(userID uint, input ProfileInput) error {
	user, err := FindUserByID(userID)
	if err != nil {
		return err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *input.Birthday)
		if err != nil {
			return errors.New("birthday must be YYYY-MM-DD")
		}
		user.Birthday = birthday
	}
	if input.Allergies != nil {
		cleaned := make([]string, 0, len(input.Allergies))
		for _, a := range input.Allergies {
			if a = strings.TrimSpace(a); a != "" {
				cleaned = append(cleaned, a)
			}
		}
		user.Allergies = strings.Join(cleaned, ",")
	}
	if input.HasDiabetes != nil {
		user.HasDiabetes = *input.HasDiabetes
		if !user.HasDiabetes {
			user.DiabetesMeasure = ""
			user.DiabetesValue = 0
		}
	}
	if input.DiabetesMeasure != nil {
		user.DiabetesMeasure = *input.DiabetesMeasure
	}
	if input.DiabetesValue != nil {
		user.DiabetesValue = *input.DiabetesValue
	}
	if input.SystolicBP != nil {
		user.SystolicBP = *input.SystolicBP
	}
	if input.DiastolicBP != nil {
		user.DiastolicBP = *input.DiastolicBP
	}

	return config.DB.Save(user).Error
}
