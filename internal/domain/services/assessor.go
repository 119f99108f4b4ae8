package services

import (
	"time"

	"github.com/google/uuid"

	"payguard-lab/internal/config"
	"payguard-lab/internal/domain/models"
	"payguard-lab/pkg/logger"
)

// High-verdict advisories. The two scoring policies evolved separately and
// keep their own wording; they are deliberately not unified.
const (
	advisoryRuleOnlyHigh   = "STOP: this notification asks you to SEND money, not receive it. Do not approve."
	advisoryClassifierHigh = "High fraud risk: the message matches known scam notification patterns. Do not approve."
)

// RiskAssessor combines the rule evaluators and the text classifier into a
// single bounded score and a categorical verdict. Assess is a pure function
// of its inputs: no I/O, no shared mutable state, safe for concurrent use.
type RiskAssessor struct {
	cfg         config.ScoringConfig
	lexical     *LexicalRuleEvaluator
	transaction *TransactionRuleEvaluator
	classifier  *TextClassifier
	logger      *logger.Logger
}

// NewRiskAssessor creates an assessor. The classifier may be nil when only
// the rule-only policy will be used.
func NewRiskAssessor(cfg config.ScoringConfig, classifier *TextClassifier, log *logger.Logger) *RiskAssessor {
	return &RiskAssessor{
		cfg:         cfg,
		lexical:     NewLexicalRuleEvaluator(cfg),
		transaction: NewTransactionRuleEvaluator(cfg),
		classifier:  classifier,
		logger:      log.WithComponent("risk-assessor"),
	}
}

// Lexical returns the lexical rule evaluator, for publishing rule metadata
func (a *RiskAssessor) Lexical() *LexicalRuleEvaluator {
	return a.lexical
}

// Config returns the scoring configuration in effect
func (a *RiskAssessor) Config() config.ScoringConfig {
	return a.cfg
}

// EvaluateRules runs the rule-only scoring path and returns the clamped
// score with the finding reasons in evaluation order
func (a *RiskAssessor) EvaluateRules(message string, amount float64, sender string) (int, []string) {
	findings := a.ruleFindings(message, amount, sender)
	score := a.clamp(sumWeights(findings))
	reasons := make([]string, len(findings))
	for i, f := range findings {
		reasons[i] = f.Reason
	}
	return score, reasons
}

// Assess scores a transaction report under the given policy
func (a *RiskAssessor) Assess(report *models.TransactionReport, policy models.Policy) *models.RiskAssessment {
	var (
		findings []models.RuleFinding
		score    int
		advisory string
	)

	switch policy {
	case models.PolicyClassifierAssisted:
		findings, score = a.assessWithClassifier(report)
		advisory = advisoryClassifierHigh
	default:
		policy = models.PolicyRuleOnly
		findings = a.ruleFindings(report.Message, report.Amount, report.Sender)
		score = sumWeights(findings)
		advisory = advisoryRuleOnlyHigh
	}

	score = a.clamp(score)
	verdict := a.verdict(score)

	assessment := &models.RiskAssessment{
		ID:         uuid.New(),
		Policy:     policy,
		Score:      score,
		Verdict:    verdict,
		Findings:   findings,
		AssessedAt: time.Now(),
	}
	if verdict == models.VerdictHigh {
		assessment.Advisory = advisory
	}

	a.logger.Debug().
		Str("policy", string(policy)).
		Int("score", score).
		Str("verdict", string(verdict)).
		Int("findings", len(findings)).
		Msg("report assessed")

	return assessment
}

// ruleFindings concatenates lexical and transaction findings in evaluation
// order: message rules first, then amount and sender rules
func (a *RiskAssessor) ruleFindings(message string, amount float64, sender string) []models.RuleFinding {
	findings := a.lexical.Evaluate(message)
	return append(findings, a.transaction.Evaluate(amount, sender)...)
}

// assessWithClassifier implements the classifier-assisted policy: the scam
// probability scaled to points, plus fixed bonuses for money-request
// transactions and high amounts. A scam-like prediction adds an explanatory
// finding carrying the probability points; it adds no weight on top, since
// the probability already encodes the model's evidence.
func (a *RiskAssessor) assessWithClassifier(report *models.TransactionReport) ([]models.RuleFinding, int) {
	result := a.classifier.Classify(report.Message)

	var findings []models.RuleFinding
	score := result.RiskPoints

	if result.IsScamLike() {
		findings = append(findings, models.RuleFinding{
			Weight: result.RiskPoints,
			Reason: "message resembles known scam notification patterns",
		})
	}

	if report.TransactionType == models.TransactionTypeRequest {
		findings = append(findings, models.RuleFinding{
			Weight: a.cfg.RequestBonus,
			Reason: "money request transaction",
		})
		score += a.cfg.RequestBonus
	}

	if report.Amount > a.cfg.AmountThreshold {
		findings = append(findings, models.RuleFinding{
			Weight: a.cfg.HighAmountBonus,
			Reason: "high transaction amount",
		})
		score += a.cfg.HighAmountBonus
	}

	return findings, score
}

// verdict maps a clamped score to its categorical label. Boundary values
// belong to the higher band: 30 is medium, 60 is high.
func (a *RiskAssessor) verdict(score int) models.Verdict {
	switch {
	case score >= a.cfg.HighThreshold:
		return models.VerdictHigh
	case score >= a.cfg.MediumThreshold:
		return models.VerdictMedium
	default:
		return models.VerdictLow
	}
}

func (a *RiskAssessor) clamp(score int) int {
	if score > a.cfg.MaxScore {
		return a.cfg.MaxScore
	}
	if score < 0 {
		return 0
	}
	return score
}

func sumWeights(findings []models.RuleFinding) int {
	var sum int
	for _, f := range findings {
		sum += f.Weight
	}
	return sum
}
