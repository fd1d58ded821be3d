package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anuraj-27/nutriscan27/models"
	"github.com/Anuraj-27/nutriscan27/utils"
)

func classifierFor(srv *httptest.Server) *ClassifierService {
	return &ClassifierService{
		client:  srv.Client(),
		baseURL: srv.URL,
		apiKey:  "test-key",
	}
}

func TestClassifyBatchSuccess(t *testing.T) {
	var gotReq classifyRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/classify", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(classifyResponse{
			Ingredients: []models.ClassifiedIngredient{
				{Name: "cane sugar", Category: "sweetener", RiskLevel: "MODERATE", BaseScore: 6, DiabetesRisk: true},
				{Name: "sea salt", Category: "mineral", RiskLevel: "MODERATE", BaseScore: 5, BPRisk: true},
			},
		})
	}))
	defer srv.Close()

	age := 55
	profile := utils.HealthProfile{
		Age:         &age,
		Allergies:   []string{"peanut"},
		HasDiabetes: true,
	}
	outcome := classifierFor(srv).ClassifyBatch([]string{"sugar", "salt"}, profile)

	require.True(t, outcome.Available)
	require.Len(t, outcome.Ingredients, 2)
	assert.Equal(t, "cane sugar", outcome.Ingredients[0].Name)
	assert.True(t, outcome.Ingredients[1].BPRisk)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, []string{"sugar", "salt"}, gotReq.Ingredients)
	assert.Equal(t, []string{"peanut"}, gotReq.UserProfile.Allergies)
	assert.True(t, gotReq.UserProfile.HasDiabetes)
	require.NotNil(t, gotReq.UserProfile.Age)
	assert.Equal(t, 55, *gotReq.UserProfile.Age)
}

func TestClassifyBatchEmptyIngredientsSkipsCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	outcome := classifierFor(srv).ClassifyBatch(nil, utils.HealthProfile{})

	assert.True(t, outcome.Available)
	assert.Empty(t, outcome.Ingredients)
	assert.Equal(t, 0, calls)
}

func TestClassifyBatchNoURLConfigured(t *testing.T) {
	svc := &ClassifierService{client: &http.Client{Timeout: time.Second}}

	outcome := svc.ClassifyBatch([]string{"sugar"}, utils.HealthProfile{})

	assert.False(t, outcome.Available)
	assert.Contains(t, outcome.Reason, "AI_CLASSIFIER_URL")
}

func TestClassifyBatchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	outcome := classifierFor(srv).ClassifyBatch([]string{"sugar"}, utils.HealthProfile{})

	assert.False(t, outcome.Available)
	assert.Contains(t, outcome.Reason, "status 500")
}

func TestClassifyBatchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	outcome := classifierFor(srv).ClassifyBatch([]string{"sugar"}, utils.HealthProfile{})

	assert.False(t, outcome.Available)
	assert.Contains(t, outcome.Reason, "decode response")
}

func TestClassifyBatchMisalignedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(classifyResponse{
			Ingredients: []models.ClassifiedIngredient{
				{Name: "sugar", Category: "sweetener", RiskLevel: "MODERATE", BaseScore: 5},
			},
		})
	}))
	defer srv.Close()

	outcome := classifierFor(srv).ClassifyBatch([]string{"sugar", "salt", "water"}, utils.HealthProfile{})

	assert.False(t, outcome.Available)
	assert.Contains(t, outcome.Reason, "sent 3 ingredients, got 1")
}

func TestClassifyBatchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	svc := classifierFor(srv)
	srv.Close()

	outcome := svc.ClassifyBatch([]string{"sugar"}, utils.HealthProfile{})

	assert.False(t, outcome.Available)
	assert.Contains(t, outcome.Reason, "request failed")
}

func TestClassifyBatchNilAllergiesSentAsEmptyList(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NoError(t, json.Unmarshal(body["userProfile"], &raw))

		json.NewEncoder(w).Encode(classifyResponse{
			Ingredients: []models.ClassifiedIngredient{
				{Name: "water", Category: "liquid", RiskLevel: "LOW"},
			},
		})
	}))
	defer srv.Close()

	outcome := classifierFor(srv).ClassifyBatch([]string{"water"}, utils.HealthProfile{})

	require.True(t, outcome.Available)
	assert.JSONEq(t, "[]", string(raw["allergies"]))
}
