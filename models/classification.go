package models

// ClassifiedIngredient is one entry of the AI classifier's batched response.
// The response array is index-aligned with the submitted ingredient list;
// the risk booleans are pre-computed by the classifier against the profile
// that was sent along with the batch.
type ClassifiedIngredient struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	RiskLevel    string   `json:"riskLevel"` // LOW | MODERATE | HIGH
	BaseScore    int      `json:"baseScore"` // 0-10
	Concerns     []string `json:"concerns"`
	IsAllergen   bool     `json:"isAllergen"`
	DiabetesRisk bool     `json:"diabetesRisk"`
	BPRisk       bool     `json:"bpRisk"`
}
