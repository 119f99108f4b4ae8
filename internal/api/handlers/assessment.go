package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"payguard-lab/internal/domain/models"
	"payguard-lab/internal/domain/services"
	"payguard-lab/internal/infrastructure/cache"
	"payguard-lab/pkg/logger"
)

// AssessmentHandler handles risk assessment endpoints
type AssessmentHandler struct {
	assessor   *services.RiskAssessor
	classifier *services.TextClassifier
	cache      *cache.RedisCache
	cacheTTL   time.Duration
	logger     *logger.Logger
}

// NewAssessmentHandler creates a new AssessmentHandler
func NewAssessmentHandler(assessor *services.RiskAssessor, classifier *services.TextClassifier, c *cache.RedisCache, cacheTTL time.Duration, log *logger.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		assessor:   assessor,
		classifier: classifier,
		cache:      c,
		cacheTTL:   cacheTTL,
		logger:     log.WithComponent("assessment-handler"),
	}
}

// Assess handles POST /api/v1/assessments.
// The report arrives as untyped key/value fields, either form-encoded or as
// a flat JSON object; validation happens in models.ParseReport.
func (h *AssessmentHandler) Assess(w http.ResponseWriter, r *http.Request) {
	fields, err := parseFields(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	policy, err := parsePolicy(fields)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := models.ParseReport(fields, policy)
	if err != nil {
		if models.IsInputError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error().Msg("failed to parse report")
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Scoring is deterministic for a given report and policy, so cached
	// results are safe to serve verbatim.
	hash := reportHash(report, policy)
	if h.cache != nil {
		var cached models.RiskAssessment
		if err := h.cache.GetCachedAssessment(r.Context(), hash, &cached); err == nil {
			h.logger.Debug().Str("hash", hash).Msg("serving cached assessment")
			w.Header().Set("X-Cache", "HIT")
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	result := h.assessor.Assess(report, policy)

	if h.cache != nil {
		if err := h.cache.CacheAssessment(r.Context(), hash, result, h.cacheTTL); err != nil {
			h.logger.WithError(err).Warn().Msg("failed to cache assessment")
		}
	}

	respondJSON(w, http.StatusOK, result)
}

// RuleScoreResponse is the response for the rule-only scoring endpoint
type RuleScoreResponse struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// EvaluateRules handles POST /api/v1/assessments/rules.
// It exposes the rule evaluators alone, without verdict mapping.
func (h *AssessmentHandler) EvaluateRules(w http.ResponseWriter, r *http.Request) {
	fields, err := parseFields(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := models.ParseReport(fields, models.PolicyRuleOnly)
	if err != nil {
		if models.IsInputError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	score, reasons := h.assessor.EvaluateRules(report.Message, report.Amount, report.Sender)
	if reasons == nil {
		reasons = []string{}
	}

	respondJSON(w, http.StatusOK, RuleScoreResponse{Score: score, Reasons: reasons})
}

// ClassifyRequest is the request body for the classification endpoint
type ClassifyRequest struct {
	Message string `json:"message"`
}

// Classify handles POST /api/v1/assessments/classify.
// It runs the text classifier alone, without rule scoring.
func (h *AssessmentHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	result := h.classifier.Classify(req.Message)
	respondJSON(w, http.StatusOK, result)
}

// RuleInfo describes one scoring rule for the metadata endpoint
type RuleInfo struct {
	Name        string `json:"name"`
	Weight      int    `json:"weight"`
	Description string `json:"description"`
}

// RulesResponse is the response for the rule metadata endpoint
type RulesResponse struct {
	Keywords        []string   `json:"keywords"`
	Rules           []RuleInfo `json:"rules"`
	HighThreshold   int        `json:"high_threshold"`
	MediumThreshold int        `json:"medium_threshold"`
	MaxScore        int        `json:"max_score"`
}

// GetRules handles GET /api/v1/assessments/rules - returns the active rule set
func (h *AssessmentHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	cfg := h.assessor.Config()

	response := RulesResponse{
		Keywords: h.assessor.Lexical().Keywords(),
		Rules: []RuleInfo{
			{Name: "keyword_match", Weight: cfg.KeywordWeight, Description: "message contains a suspicious keyword"},
			{Name: "request_pin_combination", Weight: cfg.CompoundWeight, Description: "message combines a payment request with a PIN prompt"},
			{Name: "high_amount", Weight: cfg.AmountWeight, Description: fmt.Sprintf("amount exceeds %.0f", cfg.AmountThreshold)},
			{Name: "unverified_sender", Weight: cfg.SenderDigitWeight, Description: "sender contains a 10-digit run resembling a phone number"},
		},
		HighThreshold:   cfg.HighThreshold,
		MediumThreshold: cfg.MediumThreshold,
		MaxScore:        cfg.MaxScore,
	}

	respondJSON(w, http.StatusOK, response)
}

// maxFormMemory bounds the in-memory portion of a parsed multipart body
const maxFormMemory = 1 << 20

// parseFields extracts untyped key/value fields from a form-encoded,
// multipart, or flat JSON request body
func parseFields(r *http.Request) (map[string]string, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, fmt.Errorf("invalid form body")
		}
		fields := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			fields[key] = r.PostForm.Get(key)
		}
		return fields, nil
	}

	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form body")
		}
		fields := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			fields[key] = r.PostForm.Get(key)
		}
		return fields, nil
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid request body")
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			fields[key] = v
		case float64:
			fields[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			fields[key] = strconv.FormatBool(v)
		case nil:
			// treated as absent
		default:
			return nil, fmt.Errorf("field %s must be a scalar value", key)
		}
	}
	return fields, nil
}

// parsePolicy reads the scoring policy from the request fields,
// defaulting to rule-only
func parsePolicy(fields map[string]string) (models.Policy, error) {
	raw, ok := fields["policy"]
	if !ok || strings.TrimSpace(raw) == "" {
		return models.PolicyRuleOnly, nil
	}

	switch models.Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case models.PolicyRuleOnly:
		return models.PolicyRuleOnly, nil
	case models.PolicyClassifierAssisted:
		return models.PolicyClassifierAssisted, nil
	default:
		return "", fmt.Errorf("policy must be one of %s, %s", models.PolicyRuleOnly, models.PolicyClassifierAssisted)
	}
}

// reportHash derives a stable cache key from the report fields and policy
func reportHash(report *models.TransactionReport, policy models.Policy) string {
	parts := []string{
		string(policy),
		report.Sender,
		strconv.FormatFloat(report.Amount, 'f', -1, 64),
		report.Message,
		report.UPIID,
		string(report.TransactionType),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
