package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedLabel is the output of ParseLabelText: a product name plus the
// ordered ingredient tokens extracted from raw OCR text. Duplicates are
// kept on purpose; an ingredient that appears twice on the label is scored
// twice.
type ParsedLabel struct {
	ProductName string   `json:"product_name"`
	Ingredients []string `json:"ingredients"`
	RawText     string   `json:"raw_text"`
}

// NutritionFacts holds up to three figures pattern-matched off the label.
// Each field is independently optional.
type NutritionFacts struct {
	SugarG   *float64 `json:"sugar_g_per_100g,omitempty"`
	SodiumMg *float64 `json:"sodium_mg_per_100g,omitempty"`
	SatFatG  *float64 `json:"sat_fat_g_per_100g,omitempty"`
}

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	ingredientsRe  = regexp.MustCompile(`(?i)\bingredients\b`)
	sectionEndRe   = regexp.MustCompile(`(?i)\b(?:contains|nutrition)\b`)
	tokenSplitRe   = regexp.MustCompile(`[,;]`)
	percentParenRe = regexp.MustCompile(`\(\s*\d+(?:\.\d+)?\s*%`)
	parentheticRe  = regexp.MustCompile(`\([^)]*\)`)
	charFilterRe   = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	digitsOnlyRe   = regexp.MustCompile(`^\d+$`)

	sugarRe  = regexp.MustCompile(`(?i)sugars?\s*:?\s*(\d+(?:\.\d+)?)\s*g`)
	sodiumRe = regexp.MustCompile(`(?i)sodium\s*:?\s*(\d+(?:\.\d+)?)\s*mg`)
	satFatRe = regexp.MustCompile(`(?i)saturated\s+fat\s*:?\s*(\d+(?:\.\d+)?)\s*g`)
)

// ParseLabelText turns raw OCR text into a product name and an ordered list
// of ingredient tokens. It is a total function: any input, including the
// empty string, yields a well-formed result.
//
// Product name is everything before the first "Ingredients" marker; the
// ingredient section runs from the marker to the first "Contains" or
// "Nutrition" (or end of text). Without a marker the whole cleaned text is
// tokenized and the product is "Unknown Product".
func ParseLabelText(rawText string) ParsedLabel {
	cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(rawText, " "))

	productName := "Unknown Product"
	section := cleaned

	if loc := ingredientsRe.FindStringIndex(cleaned); loc != nil {
		if name := strings.Trim(cleaned[:loc[0]], " :-"); name != "" {
			productName = name
		}
		section = cleaned[loc[1]:]
		if end := sectionEndRe.FindStringIndex(section); end != nil {
			section = section[:end[0]]
		}
	}

	var ingredients []string
	for _, token := range tokenSplitRe.Split(section, -1) {
		cleanedTok := cleanIngredientToken(token)
		// Drop OCR artifacts: fragments and bare numbers
		if len(cleanedTok) <= 2 || digitsOnlyRe.MatchString(cleanedTok) {
			continue
		}
		ingredients = append(ingredients, cleanedTok)
	}

	return ParsedLabel{
		ProductName: productName,
		Ingredients: ingredients,
		RawText:     rawText,
	}
}

// cleanIngredientToken strips parenthetical content and non-ingredient
// characters from one comma-separated token.
//
// Percentage prefixes like "(2%" are removed before whole "(...)" groups,
// so a token such as "(2% or less of Salt)" keeps its trailing words:
// the stray ")" falls to the character filter and "or less of Salt"
// survives. Tokens with a complete inline parenthetical ("colour (E150)")
// lose the whole group.
func cleanIngredientToken(token string) string {
	token = percentParenRe.ReplaceAllString(token, "")
	token = parentheticRe.ReplaceAllString(token, "")
	token = charFilterRe.ReplaceAllString(token, "")
	token = whitespaceRe.ReplaceAllString(token, " ")
	return strings.TrimSpace(token)
}

// ExtractNutritionFacts pattern-matches sugar (g), sodium (mg) and
// saturated fat (g) figures anywhere in the raw text. Fields whose pattern
// does not match are simply left nil; this routine never fails.
func ExtractNutritionFacts(rawText string) NutritionFacts {
	cleaned := whitespaceRe.ReplaceAllString(rawText, " ")

	var facts NutritionFacts
	facts.SugarG = matchFloat(sugarRe, cleaned)
	facts.SodiumMg = matchFloat(sodiumRe, cleaned)
	facts.SatFatG = matchFloat(satFatRe, cleaned)
	return facts
}

func matchFloat(re *regexp.Regexp, s string) *float64 {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}
