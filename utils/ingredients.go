package utils

import (
	"sort"
	"strings"
)

// RiskTier is the baseline LOW/MODERATE/HIGH classification of an
// ingredient, independent of any user profile.
type RiskTier string

const (
	RiskLow      RiskTier = "LOW"
	RiskModerate RiskTier = "MODERATE"
	RiskHigh     RiskTier = "HIGH"
)

type IngredientCategory string

const (
	CategorySweetener    IngredientCategory = "sweetener"
	CategoryPreservative IngredientCategory = "preservative"
	CategoryFat          IngredientCategory = "fat"
	CategoryAdditive     IngredientCategory = "additive"
	CategoryMineral      IngredientCategory = "mineral"
	CategoryDairy        IngredientCategory = "dairy"
	CategoryGrain        IngredientCategory = "grain"
	CategoryLegume       IngredientCategory = "legume"
	CategoryNut          IngredientCategory = "nut"
	CategoryProtein      IngredientCategory = "protein"
	CategoryLiquid       IngredientCategory = "liquid"
	CategoryUnknown      IngredientCategory = "unknown"
)

// AffectedBy flags which personalization axes apply to an ingredient.
type AffectedBy struct {
	Allergy       bool
	Diabetes      bool
	BloodPressure bool
	Age           bool
}

type IngredientRecord struct {
	Canonical  string
	Display    string
	Category   IngredientCategory
	Risk       RiskTier
	BaseScore  int // 0-10, 0 = safest
	Concerns   []string
	AffectedBy AffectedBy
}

// ingredientDB maps canonical names to their baseline risk metadata.
// Populated once at init, read-only afterwards.
var ingredientDB = map[string]IngredientRecord{
	"sugar": {
		Canonical: "sugar", Display: "Sugar", Category: CategorySweetener,
		Risk: RiskModerate, BaseScore: 5,
		Concerns:   []string{"High sugar content", "Can spike blood glucose"},
		AffectedBy: AffectedBy{Diabetes: true},
	},
	"brown sugar": {
		Canonical: "brown_sugar", Display: "Brown Sugar", Category: CategorySweetener,
		Risk: RiskModerate, BaseScore: 5,
		Concerns:   []string{"High sugar content"},
		AffectedBy: AffectedBy{Diabetes: true},
	},
	"high fructose corn syrup": {
		Canonical: "high_fructose_corn_syrup", Display: "High Fructose Corn Syrup", Category: CategorySweetener,
		Risk: RiskHigh, BaseScore: 7,
		Concerns:   []string{"Strongly linked to blood sugar spikes", "Associated with weight gain"},
		AffectedBy: AffectedBy{Diabetes: true},
	},
	"corn syrup": {
		Canonical: "corn_syrup", Display: "Corn Syrup", Category: CategorySweetener,
		Risk: RiskModerate, BaseScore: 6,
		Concerns:   []string{"Refined sugar source"},
		AffectedBy: AffectedBy{Diabetes: true},
	},
	"glucose syrup": {
		Canonical: "glucose_syrup", Display: "Glucose Syrup", Category: CategorySweetener,
		Risk: RiskModerate, BaseScore: 6,
		Concerns:   []string{"Refined sugar source"},
		AffectedBy: AffectedBy{Diabetes: true},
	},
	"dextrose": {
		Canonical: "dextrose", Display: "Dextrose", Category: CategorySweetener,
		Risk: RiskModerate, BaseScore: 5,
		Concerns:   []string{"Rapidly absorbed sugar"},
		AffectedBy: AffectedBy{Diabetes: true},
	},
	"maltodextrin": {
		Canonical: "maltodextrin", Display: "Maltodextrin", Category: CategorySweetener,
		Risk: RiskModerate, BaseScore: 5,
		Concerns:   []string{"High glycemic index"},
		AffectedBy: AffectedBy{Diabetes: true},
	},
	"honey": {
		Canonical: "honey", Display: "Honey", Category: CategorySweetener,
		Risk: RiskLow, BaseScore: 3,
		Concerns:   []string{"Natural sugar, still raises blood glucose"},
		AffectedBy: AffectedBy{Diabetes: true},
	},
	"aspartame": {
		Canonical: "aspartame", Display: "Aspartame", Category: CategorySweetener,
		Risk: RiskModerate, BaseScore: 4,
		Concerns:   []string{"Artificial sweetener"},
		AffectedBy: AffectedBy{},
	},
	"stevia": {
		Canonical: "stevia", Display: "Stevia", Category: CategorySweetener,
		Risk: RiskLow, BaseScore: 1,
		Concerns:   []string{"Plant-derived sweetener"},
		AffectedBy: AffectedBy{},
	},
	"salt": {
		Canonical: "salt", Display: "Salt", Category: CategoryMineral,
		Risk: RiskModerate, BaseScore: 5,
		Concerns:   []string{"High sodium content"},
		AffectedBy: AffectedBy{BloodPressure: true},
	},
	"sodium nitrite": {
		Canonical: "sodium_nitrite", Display: "Sodium Nitrite", Category: CategoryPreservative,
		Risk: RiskHigh, BaseScore: 8,
		Concerns:   []string{"Curing agent linked to processed-meat risks", "Adds sodium"},
		AffectedBy: AffectedBy{BloodPressure: true, Age: true},
	},
	"sodium benzoate": {
		Canonical: "sodium_benzoate", Display: "Sodium Benzoate", Category: CategoryPreservative,
		Risk: RiskModerate, BaseScore: 5,
		Concerns:   []string{"Synthetic preservative"},
		AffectedBy: AffectedBy{Age: true},
	},
	"potassium sorbate": {
		Canonical: "potassium_sorbate", Display: "Potassium Sorbate", Category: CategoryPreservative,
		Risk: RiskLow, BaseScore: 3,
		Concerns:   []string{"Mild preservative"},
		AffectedBy: AffectedBy{Age: true},
	},
	"bha": {
		Canonical: "bha", Display: "BHA", Category: CategoryPreservative,
		Risk: RiskHigh, BaseScore: 7,
		Concerns:   []string{"Synthetic antioxidant with suspected health effects"},
		AffectedBy: AffectedBy{Age: true},
	},
	"bht": {
		Canonical: "bht", Display: "BHT", Category: CategoryPreservative,
		Risk: RiskHigh, BaseScore: 7,
		Concerns:   []string{"Synthetic antioxidant with suspected health effects"},
		AffectedBy: AffectedBy{Age: true},
	},
	"monosodium glutamate": {
		Canonical: "monosodium_glutamate", Display: "Monosodium Glutamate", Category: CategoryAdditive,
		Risk: RiskModerate, BaseScore: 5,
		Concerns:   []string{"Flavor enhancer, may cause sensitivity reactions", "Adds sodium"},
		AffectedBy: AffectedBy{BloodPressure: true, Age: true},
	},
	"msg": {
		Canonical: "msg", Display: "MSG", Category: CategoryAdditive,
		Risk: RiskModerate, BaseScore: 5,
		Concerns:   []string{"Flavor enhancer, may cause sensitivity reactions", "Adds sodium"},
		AffectedBy: AffectedBy{BloodPressure: true, Age: true},
	},
	"red 40": {
		Canonical: "red_40", Display: "Red 40", Category: CategoryAdditive,
		Risk: RiskModerate, BaseScore: 5,
		Concerns:   []string{"Artificial color"},
		AffectedBy: AffectedBy{Age: true},
	},
	"yellow 5": {
		Canonical: "yellow_5", Display: "Yellow 5", Category: CategoryAdditive,
		Risk: RiskModerate, BaseScore: 5,
		Concerns:   []string{"Artificial color"},
		AffectedBy: AffectedBy{Age: true},
	},
	"caramel color": {
		Canonical: "caramel_color", Display: "Caramel Color", Category: CategoryAdditive,
		Risk: RiskModerate, BaseScore: 4,
		Concerns:   []string{"Processed coloring agent"},
		AffectedBy: AffectedBy{Age: true},
	},
	"artificial flavor": {
		Canonical: "artificial_flavor", Display: "Artificial Flavor", Category: CategoryAdditive,
		Risk: RiskModerate, BaseScore: 4,
		Concerns:   []string{"Undisclosed synthetic flavoring"},
		AffectedBy: AffectedBy{Age: true},
	},
	"natural flavor": {
		Canonical: "natural_flavor", Display: "Natural Flavor", Category: CategoryAdditive,
		Risk: RiskLow, BaseScore: 2,
		Concerns:   []string{"Undisclosed flavoring blend"},
		AffectedBy: AffectedBy{},
	},
	"citric acid": {
		Canonical: "citric_acid", Display: "Citric Acid", Category: CategoryAdditive,
		Risk: RiskLow, BaseScore: 1,
		Concerns:   []string{"Common acidity regulator"},
		AffectedBy: AffectedBy{},
	},
	"ascorbic acid": {
		Canonical: "ascorbic_acid", Display: "Ascorbic Acid", Category: CategoryAdditive,
		Risk: RiskLow, BaseScore: 0,
		Concerns:   []string{"Vitamin C"},
		AffectedBy: AffectedBy{},
	},
	"xanthan gum": {
		Canonical: "xanthan_gum", Display: "Xanthan Gum", Category: CategoryAdditive,
		Risk: RiskLow, BaseScore: 1,
		Concerns:   []string{"Thickening agent"},
		AffectedBy: AffectedBy{},
	},
	"soy lecithin": {
		Canonical: "soy_lecithin", Display: "Soy Lecithin", Category: CategoryAdditive,
		Risk: RiskLow, BaseScore: 1,
		Concerns:   []string{"Emulsifier derived from soy"},
		AffectedBy: AffectedBy{Allergy: true},
	},
	"gelatin": {
		Canonical: "gelatin", Display: "Gelatin", Category: CategoryAdditive,
		Risk: RiskLow, BaseScore: 2,
		Concerns:   []string{"Animal-derived gelling agent"},
		AffectedBy: AffectedBy{},
	},
	"palm oil": {
		Canonical: "palm_oil", Display: "Palm Oil", Category: CategoryFat,
		Risk: RiskHigh, BaseScore: 7,
		Concerns:   []string{"High in saturated fat"},
		AffectedBy: AffectedBy{Age: true},
	},
	"hydrogenated oil": {
		Canonical: "hydrogenated_oil", Display: "Hydrogenated Oil", Category: CategoryFat,
		Risk: RiskHigh, BaseScore: 9,
		Concerns:   []string{"Source of trans fat"},
		AffectedBy: AffectedBy{Age: true},
	},
	"vegetable oil": {
		Canonical: "vegetable_oil", Display: "Vegetable Oil", Category: CategoryFat,
		Risk: RiskModerate, BaseScore: 4,
		Concerns:   []string{"Refined oil blend"},
		AffectedBy: AffectedBy{Age: true},
	},
	"sunflower oil": {
		Canonical: "sunflower_oil", Display: "Sunflower Oil", Category: CategoryFat,
		Risk: RiskLow, BaseScore: 2,
		Concerns:   []string{"Refined seed oil"},
		AffectedBy: AffectedBy{},
	},
	"olive oil": {
		Canonical: "olive_oil", Display: "Olive Oil", Category: CategoryFat,
		Risk: RiskLow, BaseScore: 1,
		Concerns:   []string{"Mostly unsaturated fat"},
		AffectedBy: AffectedBy{},
	},
	"butter": {
		Canonical: "butter", Display: "Butter", Category: CategoryFat,
		Risk: RiskModerate, BaseScore: 5,
		Concerns:   []string{"High in saturated fat", "Dairy allergen"},
		AffectedBy: AffectedBy{Allergy: true, Age: true},
	},
	"milk": {
		Canonical: "milk", Display: "Milk", Category: CategoryDairy,
		Risk: RiskLow, BaseScore: 2,
		Concerns:   []string{"Common allergen (dairy)"},
		AffectedBy: AffectedBy{Allergy: true},
	},
	"cream": {
		Canonical: "cream", Display: "Cream", Category: CategoryDairy,
		Risk: RiskModerate, BaseScore: 4,
		Concerns:   []string{"High in saturated fat", "Dairy allergen"},
		AffectedBy: AffectedBy{Allergy: true, Age: true},
	},
	"cheese": {
		Canonical: "cheese", Display: "Cheese", Category: CategoryDairy,
		Risk: RiskModerate, BaseScore: 4,
		Concerns:   []string{"High sodium and saturated fat", "Dairy allergen"},
		AffectedBy: AffectedBy{Allergy: true, BloodPressure: true},
	},
	"whey": {
		Canonical: "whey", Display: "Whey", Category: CategoryDairy,
		Risk: RiskLow, BaseScore: 2,
		Concerns:   []string{"Dairy-derived protein"},
		AffectedBy: AffectedBy{Allergy: true},
	},
	"wheat flour": {
		Canonical: "wheat_flour", Display: "Wheat Flour", Category: CategoryGrain,
		Risk: RiskLow, BaseScore: 2,
		Concerns:   []string{"Contains gluten"},
		AffectedBy: AffectedBy{Allergy: true},
	},
	"wheat": {
		Canonical: "wheat", Display: "Wheat", Category: CategoryGrain,
		Risk: RiskLow, BaseScore: 2,
		Concerns:   []string{"Contains gluten"},
		AffectedBy: AffectedBy{Allergy: true},
	},
	"oats": {
		Canonical: "oats", Display: "Oats", Category: CategoryGrain,
		Risk: RiskLow, BaseScore: 1,
		Concerns:   []string{"Whole grain"},
		AffectedBy: AffectedBy{},
	},
	"rice": {
		Canonical: "rice", Display: "Rice", Category: CategoryGrain,
		Risk: RiskLow, BaseScore: 1,
		Concerns:   []string{"Refined grain"},
		AffectedBy: AffectedBy{},
	},
	"corn starch": {
		Canonical: "corn_starch", Display: "Corn Starch", Category: CategoryGrain,
		Risk: RiskLow, BaseScore: 2,
		Concerns:   []string{"Refined starch, raises blood glucose"},
		AffectedBy: AffectedBy{Diabetes: true},
	},
	"soy": {
		Canonical: "soy", Display: "Soy", Category: CategoryLegume,
		Risk: RiskLow, BaseScore: 2,
		Concerns:   []string{"Common allergen"},
		AffectedBy: AffectedBy{Allergy: true},
	},
	"peanut": {
		Canonical: "peanut", Display: "Peanut", Category: CategoryNut,
		Risk: RiskLow, BaseScore: 0,
		Concerns:   []string{"Common allergen"},
		AffectedBy: AffectedBy{Allergy: true},
	},
	"almond": {
		Canonical: "almond", Display: "Almond", Category: CategoryNut,
		Risk: RiskLow, BaseScore: 1,
		Concerns:   []string{"Tree nut allergen"},
		AffectedBy: AffectedBy{Allergy: true},
	},
	"cashew": {
		Canonical: "cashew", Display: "Cashew", Category: CategoryNut,
		Risk: RiskLow, BaseScore: 1,
		Concerns:   []string{"Tree nut allergen"},
		AffectedBy: AffectedBy{Allergy: true},
	},
	"egg": {
		Canonical: "egg", Display: "Egg", Category: CategoryProtein,
		Risk: RiskLow, BaseScore: 1,
		Concerns:   []string{"Common allergen"},
		AffectedBy: AffectedBy{Allergy: true},
	},
	"water": {
		Canonical: "water", Display: "Water", Category: CategoryLiquid,
		Risk: RiskLow, BaseScore: 0,
		Concerns:   []string{},
		AffectedBy: AffectedBy{},
	},
}

// lookupOrder holds the database keys sorted longest-first. The substring
// fallback in LookupIngredient walks keys in this order so that a longer,
// more specific key ("corn syrup") wins over a shorter one ("corn") that
// also happens to match. Short keys inside longer unrelated words can still
// match; that is an accepted recall/precision tradeoff for noisy OCR text.
var lookupOrder = buildLookupOrder()

func buildLookupOrder() []string {
	keys := make([]string, 0, len(ingredientDB))
	for k := range ingredientDB {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// CanonicalName lowercases a raw ingredient name and collapses whitespace
// runs to underscores.
func CanonicalName(raw string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	return strings.Join(fields, "_")
}

// LookupIngredient resolves a free-text ingredient name to a database
// record. It never fails: exact match first, then a symmetric substring
// match over the keys (tolerates pluralization and OCR noise), and finally
// a default unknown record.
func LookupIngredient(rawName string) IngredientRecord {
	name := strings.ToLower(strings.TrimSpace(rawName))

	if rec, ok := ingredientDB[name]; ok {
		return rec
	}

	if name != "" {
		for _, key := range lookupOrder {
			if strings.Contains(name, key) || strings.Contains(key, name) {
				return ingredientDB[key]
			}
		}
	}

	return IngredientRecord{
		Canonical: CanonicalName(rawName),
		Display:   strings.TrimSpace(rawName),
		Category:  CategoryUnknown,
		Risk:      RiskLow,
		BaseScore: 0,
		Concerns:  []string{"Ingredient not in database"},
	}
}
