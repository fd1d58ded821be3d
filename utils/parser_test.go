package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabelTextFullLabel(t *testing.T) {
	parsed := ParseLabelText("Choco Bar Ingredients: Sugar, Milk, (2% or less of Salt), Cocoa. Contains: Milk, Soy")

	assert.Equal(t, "Choco Bar", parsed.ProductName)
	assert.Equal(t, []string{"Sugar", "Milk", "or less of Salt", "Cocoa"}, parsed.Ingredients)
}

func TestParseLabelTextUppercaseMarker(t *testing.T) {
	parsed := ParseLabelText("Crunchy Snack INGREDIENTS: Oats; Honey; Salt")

	assert.Equal(t, "Crunchy Snack", parsed.ProductName)
	assert.Equal(t, []string{"Oats", "Honey", "Salt"}, parsed.Ingredients)
}

func TestParseLabelTextNoMarker(t *testing.T) {
	parsed := ParseLabelText("Sugar, Salt, Water")

	assert.Equal(t, "Unknown Product", parsed.ProductName)
	assert.Equal(t, []string{"Sugar", "Salt", "Water"}, parsed.Ingredients)
}

func TestParseLabelTextNutritionBoundary(t *testing.T) {
	parsed := ParseLabelText("Granola Ingredients: Oats, Honey Nutrition Facts: Sugars 12g")

	assert.Equal(t, "Granola", parsed.ProductName)
	assert.Equal(t, []string{"Oats", "Honey"}, parsed.Ingredients)
}

func TestParseLabelTextCollapsesWhitespace(t *testing.T) {
	parsed := ParseLabelText("Trail  Mix\nIngredients:\nPeanuts,\n  Raisins")

	assert.Equal(t, "Trail Mix", parsed.ProductName)
	assert.Equal(t, []string{"Peanuts", "Raisins"}, parsed.Ingredients)
}

func TestParseLabelTextDropsArtifacts(t *testing.T) {
	// fragments of <=2 chars and digit-only tokens are OCR noise
	parsed := ParseLabelText("Ingredients: Sugar, ab, 123, 7, Salt")

	assert.Equal(t, []string{"Sugar", "Salt"}, parsed.Ingredients)
}

func TestParseLabelTextStripsInlineParenthetical(t *testing.T) {
	parsed := ParseLabelText("Ingredients: Colour (E150), Water")

	assert.Equal(t, []string{"Colour", "Water"}, parsed.Ingredients)
}

func TestParseLabelTextKeepsDuplicates(t *testing.T) {
	parsed := ParseLabelText("Ingredients: Sugar, Salt, Sugar")

	assert.Equal(t, []string{"Sugar", "Salt", "Sugar"}, parsed.Ingredients)
}

func TestParseLabelTextEmptyInput(t *testing.T) {
	parsed := ParseLabelText("")

	assert.Equal(t, "Unknown Product", parsed.ProductName)
	assert.Empty(t, parsed.Ingredients)
	assert.Equal(t, "", parsed.RawText)
}

func TestParseLabelTextMarkerWithoutName(t *testing.T) {
	parsed := ParseLabelText("Ingredients: Water")

	assert.Equal(t, "Unknown Product", parsed.ProductName)
	assert.Equal(t, []string{"Water"}, parsed.Ingredients)
}

func TestExtractNutritionFactsAllFields(t *testing.T) {
	facts := ExtractNutritionFacts("Nutrition Facts\nSugars: 24g\nSodium 150 mg\nSaturated Fat: 3.5 g")

	require.NotNil(t, facts.SugarG)
	assert.Equal(t, 24.0, *facts.SugarG)
	require.NotNil(t, facts.SodiumMg)
	assert.Equal(t, 150.0, *facts.SodiumMg)
	require.NotNil(t, facts.SatFatG)
	assert.Equal(t, 3.5, *facts.SatFatG)
}

func TestExtractNutritionFactsPartial(t *testing.T) {
	facts := ExtractNutritionFacts("Sodium 80mg per serving")

	assert.Nil(t, facts.SugarG)
	require.NotNil(t, facts.SodiumMg)
	assert.Equal(t, 80.0, *facts.SodiumMg)
	assert.Nil(t, facts.SatFatG)
}

func TestExtractNutritionFactsAbsent(t *testing.T) {
	facts := ExtractNutritionFacts("Ingredients: Sugar, Salt")

	assert.Nil(t, facts.SugarG)
	assert.Nil(t, facts.SodiumMg)
	assert.Nil(t, facts.SatFatG)
}
