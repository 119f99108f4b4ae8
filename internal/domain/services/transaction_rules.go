package services

import (
	"regexp"

	"payguard-lab/internal/config"
	"payguard-lab/internal/domain/models"
)

// digitRunPattern matches a contiguous run of 10 decimal digits anywhere in
// the sender string. Substring search, not full-string validation: an email
// address with a 10-digit numeric suffix still matches, and an 11+ digit run
// matches through any contiguous 10-digit window.
var digitRunPattern = regexp.MustCompile(`[0-9]{10}`)

// TransactionRuleEvaluator inspects the transaction amount and the sender
// identifier against fixed thresholds and patterns
type TransactionRuleEvaluator struct {
	amountThreshold   float64
	amountWeight      int
	senderDigitWeight int
}

// NewTransactionRuleEvaluator creates an evaluator from the scoring configuration
func NewTransactionRuleEvaluator(cfg config.ScoringConfig) *TransactionRuleEvaluator {
	return &TransactionRuleEvaluator{
		amountThreshold:   cfg.AmountThreshold,
		amountWeight:      cfg.AmountWeight,
		senderDigitWeight: cfg.SenderDigitWeight,
	}
}

// Evaluate returns findings for the amount and sender rules, in rule order.
// The amount rule is a strict greater-than: exactly 5000 does not fire.
func (e *TransactionRuleEvaluator) Evaluate(amount float64, sender string) []models.RuleFinding {
	var findings []models.RuleFinding

	if amount > e.amountThreshold {
		findings = append(findings, models.RuleFinding{
			Weight: e.amountWeight,
			Reason: "amount exceeds normal threshold",
		})
	}

	if digitRunPattern.MatchString(sender) {
		findings = append(findings, models.RuleFinding{
			Weight: e.senderDigitWeight,
			Reason: "sender resembles an unverified phone number",
		})
	}

	return findings
}
