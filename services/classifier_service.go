package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Anuraj-27/nutriscan27/models"
	"github.com/Anuraj-27/nutriscan27/utils"
)

// ClassificationOutcome is the tagged result of a batch classification
// attempt. Available carries an index-aligned result list; Unavailable
// means the pipeline must score every ingredient through the local
// knowledge-base path. Keeping the two cases explicit avoids conflating
// "classifier down" with "classifier found nothing".
type ClassificationOutcome struct {
	Available   bool
	Ingredients []models.ClassifiedIngredient
	Reason      string // diagnostic, set when unavailable
}

func classifierUnavailable(format string, args ...any) ClassificationOutcome {
	reason := fmt.Sprintf(format, args...)
	log.Printf("classifier unavailable, falling back to local database: %s", reason)
	return ClassificationOutcome{Available: false, Reason: reason}
}

// ClassifierService calls the remote AI ingredient classifier. Every
// failure mode (network error, non-2xx status, unparseable body,
// misaligned response) degrades to an Unavailable outcome; it never
// returns an error to its callers.
type ClassifierService struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewClassifierService() *ClassifierService {
	return &ClassifierService{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: os.Getenv("AI_CLASSIFIER_URL"),
		apiKey:  os.Getenv("AI_CLASSIFIER_KEY"),
	}
}

type classifyProfile struct {
	Age             *int     `json:"age,omitempty"`
	Allergies       []string `json:"allergies"`
	HasDiabetes     bool     `json:"has_diabetes"`
	DiabetesMeasure string   `json:"diabetes_measure,omitempty"`
	DiabetesValue   *float64 `json:"diabetes_value,omitempty"`
	SystolicBP      *int     `json:"blood_pressure_systolic,omitempty"`
	DiastolicBP     *int     `json:"blood_pressure_diastolic,omitempty"`
}

type classifyRequest struct {
	Ingredients []string        `json:"ingredients"`
	UserProfile classifyProfile `json:"userProfile"`
}

type classifyResponse struct {
	Ingredients []models.ClassifiedIngredient `json:"ingredients"`
}

// ClassifyBatch submits the full ingredient list and profile in a single
// request. The remote response must be index-aligned with the input; a
// length mismatch is treated as a full failure rather than partially
// trusted.
func (s *ClassifierService) ClassifyBatch(ingredients []string, profile utils.HealthProfile) ClassificationOutcome {
	if s.baseURL == "" {
		return classifierUnavailable("AI_CLASSIFIER_URL not set")
	}
	if len(ingredients) == 0 {
		return ClassificationOutcome{Available: true, Ingredients: nil}
	}

	allergies := profile.Allergies
	if allergies == nil {
		allergies = []string{}
	}
	payload := classifyRequest{
		Ingredients: ingredients,
		UserProfile: classifyProfile{
			Age:             profile.Age,
			Allergies:       allergies,
			HasDiabetes:     profile.HasDiabetes,
			DiabetesMeasure: profile.DiabetesMeasure,
			DiabetesValue:   profile.DiabetesValue,
			SystolicBP:      profile.SystolicBP,
			DiastolicBP:     profile.DiastolicBP,
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return classifierUnavailable("marshal request: %v", err)
	}

	req, err := http.NewRequest("POST", s.baseURL+"/classify", bytes.NewReader(b))
	if err != nil {
		return classifierUnavailable("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return classifierUnavailable("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifierUnavailable("read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return classifierUnavailable("status %d: %s", resp.StatusCode, preview)
	}

	var out classifyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return classifierUnavailable("decode response: %v", err)
	}
	if len(out.Ingredients) != len(ingredients) {
		return classifierUnavailable("misaligned response: sent %d ingredients, got %d",
			len(ingredients), len(out.Ingredients))
	}

	return ClassificationOutcome{Available: true, Ingredients: out.Ingredients}
}
