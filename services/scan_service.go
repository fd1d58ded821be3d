package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Anuraj-27/nutriscan27/config"
	"github.com/Anuraj-27/nutriscan27/models"
	"github.com/Anuraj-27/nutriscan27/utils"
)

const (
	VerdictGood     = "Good"
	VerdictModerate = "Moderate"
	VerdictBad      = "Bad"

	// Normalization ceiling: a heavily penalized allergen can score well
	// above the 0-10 base scale, so the product average is normalized
	// against this assumed per-ingredient maximum.
	maxPlausibleIngredientScore = 30.0

	Disclaimer = "This assessment is informational only and not medical advice. Consult a healthcare professional about your diet."

	noRiskReason = "No allergens or high-risk additives detected"
)

// RedactedProfile is the non-identifying slice of the user's profile that
// is echoed back inside a ProductScore.
type RedactedProfile struct {
	Age         *int     `json:"age,omitempty"`
	Allergies   []string `json:"allergies"`
	HasDiabetes bool     `json:"has_diabetes"`
	SystolicBP  *int     `json:"blood_pressure_systolic,omitempty"`
	DiastolicBP *int     `json:"blood_pressure_diastolic,omitempty"`
}

// ProductScore is the terminal artifact of the scoring pipeline.
type ProductScore struct {
	ProductName string                  `json:"product_name"`
	ScannedAt   time.Time               `json:"scanned_at"`
	Profile     RedactedProfile         `json:"profile"`
	Ingredients []utils.IngredientScore `json:"ingredients"`
	Score       int                     `json:"score"` // 0-100
	Verdict     string                  `json:"verdict"`
	TopReasons  []string                `json:"top_reasons"`
	Disclaimer  string                  `json:"disclaimer"`
}

// ingredientClassifier is what ScanService needs from the AI adapter;
// satisfied by *ClassifierService and by stubs in tests.
type ingredientClassifier interface {
	ClassifyBatch(ingredients []string, profile utils.HealthProfile) ClassificationOutcome
}

type ScanService struct {
	classifier ingredientClassifier
	scorer     *utils.RiskScorer
}

func NewScanService(classifier ingredientClassifier, scorer *utils.RiskScorer) *ScanService {
	return &ScanService{classifier: classifier, scorer: scorer}
}

// BuildProductScore runs the full per-product pipeline: one batched
// classification attempt, per-ingredient scoring (positional classifier
// result when present, local knowledge-base path otherwise), then
// aggregation into a 0-100 score, a verdict and up to three top reasons.
func (s *ScanService) BuildProductScore(productName string, ingredients []string, profile utils.HealthProfile) *ProductScore {
	outcome := s.classifier.ClassifyBatch(ingredients, profile)

	scores := make([]utils.IngredientScore, 0, len(ingredients))
	for i, name := range ingredients {
		if outcome.Available && i < len(outcome.Ingredients) {
			scores = append(scores, s.scorer.ScoreClassified(outcome.Ingredients[i], profile))
			continue
		}
		rec := utils.LookupIngredient(name)
		scores = append(scores, s.scorer.ScoreRecord(name, rec, profile))
	}

	total := 0
	for _, sc := range scores {
		total += sc.FinalScore
	}
	avg := 0.0
	if len(scores) > 0 {
		avg = float64(total) / float64(len(scores))
	}
	normalized := avg / maxPlausibleIngredientScore * 100
	if normalized > 100 {
		normalized = 100
	}
	score := int(math.Round(normalized))

	verdict := VerdictBad
	switch {
	case score <= 30:
		verdict = VerdictGood
	case score <= 60:
		verdict = VerdictModerate
	}

	return &ProductScore{
		ProductName: productName,
		ScannedAt:   time.Now(),
		Profile:     redactProfile(profile),
		Ingredients: scores,
		Score:       score,
		Verdict:     verdict,
		TopReasons:  buildTopReasons(scores, verdict),
		Disclaimer:  Disclaimer,
	}
}

func redactProfile(p utils.HealthProfile) RedactedProfile {
	allergies := p.Allergies
	if allergies == nil {
		allergies = []string{}
	}
	return RedactedProfile{
		Age:         p.Age,
		Allergies:   allergies,
		HasDiabetes: p.HasDiabetes,
		SystolicBP:  p.SystolicBP,
		DiastolicBP: p.DiastolicBP,
	}
}

// buildTopReasons ranks up to three explanations: allergen count first,
// then HIGH-risk ingredient names, then the first applied multiplier. A
// Good verdict with nothing to flag gets two positive reasons instead.
func buildTopReasons(scores []utils.IngredientScore, verdict string) []string {
	reasons := []string{}

	allergens := 0
	var highRisk []string
	for _, sc := range scores {
		if sc.IsAllergen {
			allergens++
		}
		if sc.Risk == utils.RiskHigh {
			highRisk = append(highRisk, sc.Name)
		}
	}

	if allergens > 0 {
		reasons = append(reasons, fmt.Sprintf("%d ingredient(s) match your allergen list", allergens))
	}
	if len(highRisk) > 0 && len(reasons) < 3 {
		reasons = append(reasons, "High-risk ingredients: "+strings.Join(highRisk, ", "))
	}
	if len(reasons) < 3 {
		for _, sc := range scores {
			if len(sc.Multipliers) > 0 {
				reasons = append(reasons, sc.Multipliers[0].Reason)
				break
			}
		}
	}
	if verdict == VerdictGood && len(reasons) == 0 {
		lowRisk := 0
		for _, sc := range scores {
			if sc.Risk == utils.RiskLow {
				lowRisk++
			}
		}
		reasons = append(reasons,
			fmt.Sprintf("%d low-risk ingredients identified", lowRisk),
			noRiskReason,
		)
	}

	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return reasons
}

// AnalyzeAndStore parses raw label text, scores it against the user's
// profile and persists the resulting scan record. A classifier outage
// degrades to local scoring and is not an error; only a parse yielding no
// ingredients is surfaced for the caller to decide about, via the empty
// ingredient list on the returned score.
func (s *ScanService) AnalyzeAndStore(user *models.User, rawText string, ocrConfidence float64, imageURL string) (*ProductScore, *utils.NutritionFacts, error) {
	parsed := utils.ParseLabelText(rawText)
	profile := utils.BuildHealthProfile(user)

	product := s.BuildProductScore(parsed.ProductName, parsed.Ingredients, profile)
	facts := utils.ExtractNutritionFacts(rawText)

	data, err := json.Marshal(product.Ingredients)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode ingredient scores: %w", err)
	}

	rec := &models.ScanRecord{
		UserID:         user.ID,
		ProductName:    product.ProductName,
		RawText:        rawText,
		OCRConfidence:  ocrConfidence,
		ImageURL:       imageURL,
		IngredientData: string(data),
		SugarG:         facts.SugarG,
		SodiumMg:       facts.SodiumMg,
		SatFatG:        facts.SatFatG,
		Score:          product.Score,
		Verdict:        product.Verdict,
		TopReasons:     strings.Join(product.TopReasons, "; "),
	}
	if err := config.DB.Create(rec).Error; err != nil {
		return nil, nil, err
	}

	notifyScanResult(user.ID, product)

	return product, &facts, nil
}

func notifyScanResult(userID uint, product *ProductScore) {
	for _, sc := range product.Ingredients {
		if sc.IsAllergen {
			EmitAlert(userID, "warning",
				fmt.Sprintf("%s contains %s, which matches your allergen list", product.ProductName, sc.Name))
			return
		}
	}
	if product.Verdict == VerdictBad {
		EmitAlert(userID, "warning",
			fmt.Sprintf("%s scored %d/100 (Bad) against your health profile", product.ProductName, product.Score))
	}
}

func (s *ScanService) ListScans(userID uint) ([]models.ScanRecord, error) {
	var scans []models.ScanRecord
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&scans).Error
	return scans, err
}

func (s *ScanService) GetScan(userID, scanID uint) (*models.ScanRecord, error) {
	var scan models.ScanRecord
	err := config.DB.
		Where("id = ? AND user_id = ?", scanID, userID).
		First(&scan).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &scan, nil
}
