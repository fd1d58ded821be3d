package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anuraj-27/nutriscan27/models"
	"github.com/Anuraj-27/nutriscan27/utils"
)

// stubClassifier returns a canned outcome so pipeline behavior can be
// driven without a remote service.
type stubClassifier struct {
	outcome ClassificationOutcome
	calls   int
}

func (s *stubClassifier) ClassifyBatch(ingredients []string, profile utils.HealthProfile) ClassificationOutcome {
	s.calls++
	return s.outcome
}

func intPtr(v int) *int { return &v }

func newTestService(outcome ClassificationOutcome) (*ScanService, *stubClassifier) {
	stub := &stubClassifier{outcome: outcome}
	scorer := utils.NewRiskScorer(utils.DefaultScoringConfig())
	return NewScanService(stub, scorer), stub
}

func unavailableOutcome() ClassificationOutcome {
	return ClassificationOutcome{Available: false, Reason: "test"}
}

func TestBuildProductScoreLocalFallback(t *testing.T) {
	svc, stub := newTestService(unavailableOutcome())
	profile := utils.HealthProfile{
		Age:         intPtr(70),
		HasDiabetes: true,
		SystolicBP:  intPtr(140),
	}

	product := svc.BuildProductScore("Test Snack", []string{"sugar", "salt", "water"}, profile)

	assert.Equal(t, 1, stub.calls)
	require.Len(t, product.Ingredients, 3)
	assert.Equal(t, 8, product.Ingredients[0].FinalScore) // sugar: 5 x 1.5
	assert.Equal(t, 7, product.Ingredients[1].FinalScore) // salt: 5 x 1.3
	assert.Equal(t, 0, product.Ingredients[2].FinalScore) // water

	// avg 5 -> 5/30x100 ~ 17
	assert.Equal(t, 17, product.Score)
	assert.Equal(t, VerdictGood, product.Verdict)
	assert.Equal(t, Disclaimer, product.Disclaimer)
}

// With the classifier unavailable, every ingredient must score exactly as
// the pure knowledge-base path would.
func TestBuildProductScoreFallbackMatchesLocalPath(t *testing.T) {
	svc, _ := newTestService(unavailableOutcome())
	scorer := utils.NewRiskScorer(utils.DefaultScoringConfig())
	profile := utils.HealthProfile{HasDiabetes: true, Allergies: []string{"peanut"}}

	ingredients := []string{"sugar", "peanuts", "mystery goo", "water"}
	product := svc.BuildProductScore("Snack", ingredients, profile)

	require.Len(t, product.Ingredients, len(ingredients))
	for i, name := range ingredients {
		want := scorer.ScoreRecord(name, utils.LookupIngredient(name), profile)
		assert.Equal(t, want, product.Ingredients[i], "ingredient %q", name)
	}
}

func TestBuildProductScoreUsesClassifierPositionally(t *testing.T) {
	classified := []models.ClassifiedIngredient{
		{Name: "cane sugar", Category: "sweetener", RiskLevel: "MODERATE", BaseScore: 6, Concerns: []string{"Sugar"}},
		{Name: "spring water", Category: "liquid", RiskLevel: "LOW", BaseScore: 0, Concerns: nil},
	}
	svc, _ := newTestService(ClassificationOutcome{Available: true, Ingredients: classified})

	product := svc.BuildProductScore("Drink", []string{"sugar", "water"}, utils.HealthProfile{})

	require.Len(t, product.Ingredients, 2)
	assert.Equal(t, "cane sugar", product.Ingredients[0].Name)
	assert.Equal(t, "spring water", product.Ingredients[1].Name)
	assert.Equal(t, 6, product.Ingredients[0].FinalScore)
}

// A short (but nominally available) result list falls back per index.
func TestBuildProductScoreShortClassifierResult(t *testing.T) {
	classified := []models.ClassifiedIngredient{
		{Name: "cane sugar", Category: "sweetener", RiskLevel: "MODERATE", BaseScore: 6},
	}
	svc, _ := newTestService(ClassificationOutcome{Available: true, Ingredients: classified})

	product := svc.BuildProductScore("Drink", []string{"sugar", "salt"}, utils.HealthProfile{})

	require.Len(t, product.Ingredients, 2)
	assert.Equal(t, "cane sugar", product.Ingredients[0].Name)
	// index 1 had no positional result -> local knowledge-base path
	assert.Equal(t, "salt", product.Ingredients[1].Name)
	assert.Equal(t, "salt", product.Ingredients[1].Canonical)
}

func TestBuildProductScoreEmptyIngredients(t *testing.T) {
	svc, _ := newTestService(unavailableOutcome())

	product := svc.BuildProductScore("Unknown Product", nil, utils.HealthProfile{})

	assert.Equal(t, 0, product.Score)
	assert.Equal(t, VerdictGood, product.Verdict)
	require.Len(t, product.TopReasons, 2)
	assert.Equal(t, "0 low-risk ingredients identified", product.TopReasons[0])
	assert.Equal(t, noRiskReason, product.TopReasons[1])
}

func TestBuildProductScoreBoundsAndCap(t *testing.T) {
	// an extreme allergy penalty pushes the average past the normalization
	// ceiling; the product score must cap at 100
	cfg := utils.DefaultScoringConfig()
	cfg.AllergyPenalty = 100
	stub := &stubClassifier{outcome: unavailableOutcome()}
	svc := NewScanService(stub, utils.NewRiskScorer(cfg))

	profile := utils.HealthProfile{Allergies: []string{"peanut"}}
	product := svc.BuildProductScore("Peanut Bar", []string{"peanuts", "peanut"}, profile)

	assert.Equal(t, 100, product.Score)
	assert.Equal(t, VerdictBad, product.Verdict)
}

func TestBuildProductScoreVerdictThresholds(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []string
		profile     utils.HealthProfile
		score       int
		verdict     string
	}{
		{
			name:        "low scores stay good",
			ingredients: []string{"water", "oats"},
			profile:     utils.HealthProfile{},
			score:       2, // avg 0.5 -> 1.67
			verdict:     VerdictGood,
		},
		{
			name:        "thirty is still good",
			ingredients: []string{"hydrogenated oil"},
			profile:     utils.HealthProfile{},
			score:       30, // 9/30 x 100
			verdict:     VerdictGood,
		},
		{
			name:        "just past thirty is moderate",
			ingredients: []string{"hydrogenated oil", "sodium nitrite"},
			profile:     utils.HealthProfile{Age: intPtr(70)},
			score:       32, // per-ingredient 10 and 9, avg 9.5
			verdict:     VerdictModerate,
		},
		{
			name:        "sixty is still moderate",
			ingredients: []string{"cheese"},
			profile:     utils.HealthProfile{Allergies: []string{"cheese"}, SystolicBP: intPtr(150)},
			score:       60, // (4 + 10) x 1.3 -> 18
			verdict:     VerdictModerate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(unavailableOutcome())

			product := svc.BuildProductScore("P", tt.ingredients, tt.profile)
			assert.Equal(t, tt.score, product.Score)
			assert.Equal(t, tt.verdict, product.Verdict)
		})
	}
}

func TestTopReasonsAllergenFirstAndCapped(t *testing.T) {
	svc, _ := newTestService(unavailableOutcome())
	profile := utils.HealthProfile{
		Age:         intPtr(70),
		HasDiabetes: true,
		SystolicBP:  intPtr(150),
		Allergies:   []string{"peanut", "milk"},
	}

	ingredients := []string{"peanuts", "milk", "sodium nitrite", "bha", "sugar", "salt"}
	product := svc.BuildProductScore("Snack", ingredients, profile)

	require.NotEmpty(t, product.TopReasons)
	assert.LessOrEqual(t, len(product.TopReasons), 3)
	assert.Equal(t, "2 ingredient(s) match your allergen list", product.TopReasons[0])
	assert.Contains(t, product.TopReasons[1], "High-risk ingredients: ")
	assert.Contains(t, product.TopReasons[1], "sodium nitrite")
	assert.Contains(t, product.TopReasons[1], "bha")
}

func TestTopReasonsGoodProductPositiveFallback(t *testing.T) {
	svc, _ := newTestService(unavailableOutcome())

	product := svc.BuildProductScore("Water Bottle", []string{"water", "citric acid"}, utils.HealthProfile{})

	assert.Equal(t, VerdictGood, product.Verdict)
	require.Len(t, product.TopReasons, 2)
	assert.Equal(t, "2 low-risk ingredients identified", product.TopReasons[0])
	assert.Equal(t, noRiskReason, product.TopReasons[1])
}

func TestRedactedProfileOmitsIdentity(t *testing.T) {
	svc, _ := newTestService(unavailableOutcome())
	profile := utils.HealthProfile{
		Age:         intPtr(44),
		Allergies:   []string{"soy"},
		HasDiabetes: true,
	}

	product := svc.BuildProductScore("Snack", []string{"water"}, profile)

	require.NotNil(t, product.Profile.Age)
	assert.Equal(t, 44, *product.Profile.Age)
	assert.Equal(t, []string{"soy"}, product.Profile.Allergies)
	assert.True(t, product.Profile.HasDiabetes)
}

func TestDuplicateIngredientsScoredTwice(t *testing.T) {
	svc, _ := newTestService(unavailableOutcome())

	product := svc.BuildProductScore("Sweet", []string{"sugar", "sugar"}, utils.HealthProfile{HasDiabetes: true})

	require.Len(t, product.Ingredients, 2)
	assert.Equal(t, product.Ingredients[0], product.Ingredients[1])
}
