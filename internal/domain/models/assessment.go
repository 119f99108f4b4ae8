package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the direction of the reported transaction
type TransactionType string

const (
	TransactionTypeSend    TransactionType = "Send"
	TransactionTypeReceive TransactionType = "Receive"
	TransactionTypeRequest TransactionType = "Request"
)

// Policy selects which scoring path is applied to a report
type Policy string

const (
	PolicyRuleOnly           Policy = "rule_only"
	PolicyClassifierAssisted Policy = "classifier_assisted"
)

// Verdict is the categorical risk label derived from the clamped score
type Verdict string

const (
	VerdictLow    Verdict = "low"
	VerdictMedium Verdict = "medium"
	VerdictHigh   Verdict = "high"
)

// MessageClass is the binary class predicted by the text classifier
type MessageClass string

const (
	MessageClassBenign   MessageClass = "benign"
	MessageClassScamLike MessageClass = "scam_like"
)

// TransactionReport is a single reported payment notification.
// It is immutable input, created per request and never persisted.
type TransactionReport struct {
	Sender          string          `json:"sender"`
	Amount          float64         `json:"amount"`
	Message         string          `json:"message"`
	UPIID           string          `json:"upi_id,omitempty"`
	TransactionType TransactionType `json:"txn_type,omitempty"`
}

// RuleFinding is a single rule or model output contributing risk points
// and a human-readable explanation
type RuleFinding struct {
	Weight int    `json:"weight"`
	Reason string `json:"reason"`
}

// ClassificationResult is the text classifier's output for one message
type ClassificationResult struct {
	PredictedClass  MessageClass `json:"predicted_class"`
	ScamProbability float64      `json:"scam_probability"` // 0.0 - 1.0
	RiskPoints      int          `json:"risk_points"`      // 0 - 100
}

// IsScamLike reports whether the classifier predicted the scam-like class
func (r ClassificationResult) IsScamLike() bool {
	return r.PredictedClass == MessageClassScamLike
}

// RiskAssessment is the engine's verdict for one transaction report
type RiskAssessment struct {
	ID         uuid.UUID     `json:"id"`
	Policy     Policy        `json:"policy"`
	Score      int           `json:"score"` // clamped to [0, 100]
	Verdict    Verdict       `json:"verdict"`
	Findings   []RuleFinding `json:"findings"`
	Advisory   string        `json:"advisory,omitempty"`
	AssessedAt time.Time     `json:"assessed_at"`
}

// Reasons returns the finding explanations in evaluation order
func (a *RiskAssessment) Reasons() []string {
	reasons := make([]string, len(a.Findings))
	for i, f := range a.Findings {
		reasons[i] = f.Reason
	}
	return reasons
}
