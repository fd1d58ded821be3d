package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Anuraj-27/nutriscan27/models"
)

// HealthProfile is the normalized, read-only view of a user's health data
// that the scoring pipeline works with. It is built once at the pipeline
// boundary (BuildHealthProfile); nil pointer fields mean "signal absent"
// and never trigger the corresponding personalization branch.
type HealthProfile struct {
	Age             *int
	Allergies       []string
	HasDiabetes     bool
	DiabetesMeasure string
	DiabetesValue   *float64
	SystolicBP      *int
	DiastolicBP     *int
}

// BuildHealthProfile derives a HealthProfile from a stored user.
// Diabetes measure/value are carried only when the diabetes flag is set.
func BuildHealthProfile(user *models.User) HealthProfile {
	var p HealthProfile
	if user == nil {
		return p
	}

	if !user.Birthday.IsZero() {
		age := CalculateAge(user.Birthday)
		p.Age = &age
	}
	for _, a := range strings.Split(user.Allergies, ",") {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			p.Allergies = append(p.Allergies, a)
		}
	}
	if user.HasDiabetes {
		p.HasDiabetes = true
		p.DiabetesMeasure = user.DiabetesMeasure
		if user.DiabetesValue > 0 {
			v := user.DiabetesValue
			p.DiabetesValue = &v
		}
	}
	if user.SystolicBP > 0 {
		s := user.SystolicBP
		p.SystolicBP = &s
	}
	if user.DiastolicBP > 0 {
		d := user.DiastolicBP
		p.DiastolicBP = &d
	}
	return p
}

// CalculateAge returns whole years since birthday.
func CalculateAge(birthday time.Time) int {
	now := time.Now()
	age := now.Year() - birthday.Year()
	if now.YearDay() < birthday.YearDay() {
		age--
	}
	return age
}

// Multiplier is a named score adjustment: the allergy penalty is additive,
// the rest are multiplicative factors.
type Multiplier struct {
	Reason string  `json:"reason"`
	Value  float64 `json:"value"`
}

// IngredientScore is the scored result for a single ingredient. Immutable
// after construction.
type IngredientScore struct {
	Name        string             `json:"name"`
	Canonical   string             `json:"canonical"`
	Category    IngredientCategory `json:"category"`
	Risk        RiskTier           `json:"risk_level"`
	BaseScore   int                `json:"base_score"`
	Multipliers []Multiplier       `json:"multipliers"`
	FinalScore  int                `json:"final_score"`
	Comment     string             `json:"comment"`
	IsAllergen  bool               `json:"is_allergen"`
}

// ScoringConfig holds the personalization constants. Injected into the
// scorer so tests can substitute alternate values without global state.
type ScoringConfig struct {
	AllergyPenalty     float64
	DiabetesFactor     float64
	BPFactor           float64
	AgeFactor          float64
	SystolicThreshold  int
	DiastolicThreshold int
	AgeThreshold       int
}

// DefaultScoringConfig returns the production constants.
// NOTE: values are heuristic and have not had clinical review.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		AllergyPenalty:     10,
		DiabetesFactor:     1.5,
		BPFactor:           1.3,
		AgeFactor:          1.1,
		SystolicThreshold:  130,
		DiastolicThreshold: 80,
		AgeThreshold:       65,
	}
}

const (
	allergenComment = "Allergen alert: this ingredient matches your allergy profile."
	safeComment     = "Generally recognized as safe."
	moderateComment = "Moderate concern, though none of your personal risk factors apply."

	allergyReason  = "Matches your allergen list"
	diabetesReason = "Raises blood sugar, relevant with diabetes"
	bpReason       = "Sodium-sensitive with elevated blood pressure"
	ageReason      = "Additive burden increases with age"
)

// RiskScorer applies profile-dependent multipliers to a base ingredient
// score. Safe for concurrent use; it carries only immutable configuration.
type RiskScorer struct {
	cfg ScoringConfig
}

func NewRiskScorer(cfg ScoringConfig) *RiskScorer {
	return &RiskScorer{cfg: cfg}
}

// ScoreRecord scores an ingredient through the local knowledge-base path.
//
// The checks run in a fixed order: the additive allergy penalty first, then
// the multiplicative diabetes, blood-pressure and age factors. The final
// score is rounded but deliberately not clamped to 10, so a penalized
// allergen can exceed the base scale; product-level normalization assumes
// this headroom.
func (s *RiskScorer) ScoreRecord(name string, rec IngredientRecord, profile HealthProfile) IngredientScore {
	running := float64(rec.BaseScore)
	var multipliers []Multiplier
	isAllergen := false

	if rec.AffectedBy.Allergy && matchesAllergy(name, profile.Allergies) {
		running += s.cfg.AllergyPenalty
		multipliers = append(multipliers, Multiplier{Reason: allergyReason, Value: s.cfg.AllergyPenalty})
		isAllergen = true
	}
	if rec.AffectedBy.Diabetes && profile.HasDiabetes {
		running *= s.cfg.DiabetesFactor
		multipliers = append(multipliers, Multiplier{Reason: diabetesReason, Value: s.cfg.DiabetesFactor})
	}
	if rec.AffectedBy.BloodPressure && s.highBloodPressure(profile) {
		running *= s.cfg.BPFactor
		multipliers = append(multipliers, Multiplier{Reason: bpReason, Value: s.cfg.BPFactor})
	}
	if rec.AffectedBy.Age && s.overAgeThreshold(profile) {
		running *= s.cfg.AgeFactor
		multipliers = append(multipliers, Multiplier{Reason: ageReason, Value: s.cfg.AgeFactor})
	}

	final := int(math.Round(running))
	return IngredientScore{
		Name:        name,
		Canonical:   rec.Canonical,
		Category:    rec.Category,
		Risk:        rec.Risk,
		BaseScore:   rec.BaseScore,
		Multipliers: multipliers,
		FinalScore:  final,
		Comment:     s.comment(isAllergen, multipliers, rec.Risk, rec.Concerns),
		IsAllergen:  isAllergen,
	}
}

// ScoreClassified scores an ingredient from the AI classifier's response.
// The risk booleans arrive pre-computed against the profile, so they gate
// the same checks the knowledge-base path drives from affectedBy flags;
// age sensitivity is inferred from the category instead (additive, fat and
// preservative classes). Unlike the local path, the final score is clamped
// to 10.
func (s *RiskScorer) ScoreClassified(ai models.ClassifiedIngredient, profile HealthProfile) IngredientScore {
	running := float64(ai.BaseScore)
	var multipliers []Multiplier
	isAllergen := false

	if ai.IsAllergen {
		running += s.cfg.AllergyPenalty
		multipliers = append(multipliers, Multiplier{Reason: allergyReason, Value: s.cfg.AllergyPenalty})
		isAllergen = true
	}
	if ai.DiabetesRisk && profile.HasDiabetes {
		running *= s.cfg.DiabetesFactor
		multipliers = append(multipliers, Multiplier{Reason: diabetesReason, Value: s.cfg.DiabetesFactor})
	}
	if ai.BPRisk && s.highBloodPressure(profile) {
		running *= s.cfg.BPFactor
		multipliers = append(multipliers, Multiplier{Reason: bpReason, Value: s.cfg.BPFactor})
	}
	category := IngredientCategory(strings.ToLower(strings.TrimSpace(ai.Category)))
	if ageSensitiveCategory(category) && s.overAgeThreshold(profile) {
		running *= s.cfg.AgeFactor
		multipliers = append(multipliers, Multiplier{Reason: ageReason, Value: s.cfg.AgeFactor})
	}

	final := int(math.Round(running))
	if final > 10 {
		final = 10
	}

	risk := RiskTier(strings.ToUpper(strings.TrimSpace(ai.RiskLevel)))
	switch risk {
	case RiskLow, RiskModerate, RiskHigh:
	default:
		risk = RiskLow
	}

	return IngredientScore{
		Name:        ai.Name,
		Canonical:   CanonicalName(ai.Name),
		Category:    category,
		Risk:        risk,
		BaseScore:   ai.BaseScore,
		Multipliers: multipliers,
		FinalScore:  final,
		Comment:     s.comment(isAllergen, multipliers, risk, ai.Concerns),
		IsAllergen:  isAllergen,
	}
}

func (s *RiskScorer) highBloodPressure(p HealthProfile) bool {
	if p.SystolicBP != nil && *p.SystolicBP >= s.cfg.SystolicThreshold {
		return true
	}
	if p.DiastolicBP != nil && *p.DiastolicBP >= s.cfg.DiastolicThreshold {
		return true
	}
	return false
}

func (s *RiskScorer) overAgeThreshold(p HealthProfile) bool {
	return p.Age != nil && *p.Age > s.cfg.AgeThreshold
}

// ageSensitiveCategory mirrors the knowledge base's age flag for
// classifier-sourced ingredients: the additive/fat/preservative classes.
func ageSensitiveCategory(c IngredientCategory) bool {
	switch c {
	case CategoryPreservative, CategoryFat, CategoryAdditive:
		return true
	}
	return false
}

// matchesAllergy performs the symmetric, case-insensitive partial match
// between an ingredient name and the profile's allergy strings. "peanut"
// matches "peanuts" and vice versa; it also lets "nut" match "nutmeg",
// which is kept as-is rather than tightened to word boundaries.
func matchesAllergy(name string, allergies []string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return false
	}
	for _, a := range allergies {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if strings.Contains(n, a) || strings.Contains(a, n) {
			return true
		}
	}
	return false
}

// comment builds the deterministic per-ingredient explanation. The
// allergen alert always wins, regardless of other multipliers.
func (s *RiskScorer) comment(isAllergen bool, multipliers []Multiplier, risk RiskTier, concerns []string) string {
	switch {
	case isAllergen:
		return allergenComment
	case len(multipliers) == 0 && risk == RiskLow:
		return safeComment
	case len(multipliers) == 0:
		return moderateComment
	default:
		return fmt.Sprintf("Elevated concern due to: %s. %s",
			strings.Join(concerns, ", "), multipliers[0].Reason)
	}
}
