package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payguard-lab/internal/config"
	"payguard-lab/internal/domain/models"
	"payguard-lab/internal/domain/services"
	"payguard-lab/pkg/logger"
)

func newTestHandler(t *testing.T) *AssessmentHandler {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "console"})
	classifier, err := services.NewTextClassifier(services.DefaultTrainingCorpus(), config.DefaultClassifier(), log)
	require.NoError(t, err)
	assessor := services.NewRiskAssessor(config.DefaultScoring(), classifier, log)

	return NewAssessmentHandler(assessor, classifier, nil, 0, log)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(data)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAssess_JSONBody(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.Assess, "/api/v1/assessments", map[string]any{
		"sender":  "9876543210",
		"amount":  6000,
		"message": "Approve collect request and enter UPI PIN",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.RiskAssessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.Equal(t, models.PolicyRuleOnly, result.Policy)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, models.VerdictHigh, result.Verdict)
	assert.NotEmpty(t, result.Advisory)
	assert.NotEmpty(t, result.Findings)
}

func TestAssess_FormBody(t *testing.T) {
	h := newTestHandler(t)

	form := url.Values{}
	form.Set("sender", "merchant@okbank")
	form.Set("amount", "100")
	form.Set("message", "Payment successful")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Assess(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.RiskAssessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.VerdictLow, result.Verdict)
}

func TestAssess_MultipartBody(t *testing.T) {
	h := newTestHandler(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("sender", "9876543210"))
	require.NoError(t, mw.WriteField("amount", "6000"))
	require.NoError(t, mw.WriteField("message", "Approve collect request and enter UPI PIN"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Assess(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.RiskAssessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, models.VerdictHigh, result.Verdict)
}

func TestAssess_ClassifierAssistedPolicy(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.Assess, "/api/v1/assessments", map[string]any{
		"sender":   "9876543210",
		"amount":   6000,
		"message":  "Enter UPI PIN to receive reward",
		"upi_id":   "attacker@upi",
		"txn_type": "Request",
		"policy":   "classifier_assisted",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.RiskAssessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.PolicyClassifierAssisted, result.Policy)
	assert.Equal(t, models.VerdictHigh, result.Verdict)
}

func TestAssess_ValidationErrors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{
			name: "missing message",
			body: map[string]any{"sender": "a@b", "amount": 100},
		},
		{
			name: "negative amount",
			body: map[string]any{"sender": "a@b", "amount": -5, "message": "hi"},
		},
		{
			name: "unknown policy",
			body: map[string]any{"sender": "a@b", "amount": 100, "message": "hi", "policy": "strict"},
		},
		{
			name: "classifier policy without txn_type",
			body: map[string]any{"sender": "a@b", "amount": 100, "message": "hi", "upi_id": "a@b", "policy": "classifier_assisted"},
		},
		{
			name: "non-scalar field",
			body: map[string]any{"sender": "a@b", "amount": 100, "message": []string{"hi"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Assess, "/api/v1/assessments", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestAssess_MalformedJSON(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Assess(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateRules(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.EvaluateRules, "/api/v1/assessments/rules", map[string]any{
		"sender":  "9876543210",
		"amount":  6000,
		"message": "please approve",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RuleScoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 50, resp.Score)
	assert.Len(t, resp.Reasons, 3)
}

func TestEvaluateRules_NoFindings(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.EvaluateRules, "/api/v1/assessments/rules", map[string]any{
		"sender":  "merchant@okbank",
		"amount":  100,
		"message": "Payment completed",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RuleScoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.Score)
	assert.NotNil(t, resp.Reasons)
	assert.Empty(t, resp.Reasons)
}

func TestClassify(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.Classify, "/api/v1/assessments/classify", ClassifyRequest{
		Message: "Enter UPI PIN to receive reward",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.ClassificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.MessageClassScamLike, result.PredictedClass)
	assert.Greater(t, result.RiskPoints, 50)
}

func TestClassify_EmptyMessage(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.Classify, "/api/v1/assessments/classify", ClassifyRequest{Message: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRules(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/rules", nil)
	rec := httptest.NewRecorder()
	h.GetRules(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RulesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Keywords, 6)
	assert.Len(t, resp.Rules, 4)
	assert.Equal(t, 60, resp.HighThreshold)
	assert.Equal(t, 30, resp.MediumThreshold)
	assert.Equal(t, 100, resp.MaxScore)
}
