package services

import (
	"fmt"
	"strings"

	"payguard-lab/internal/config"
	"payguard-lab/internal/domain/models"
)

// LexicalRuleEvaluator scans notification text for fixed suspicious phrases.
// Matching is plain substring containment over the lower-cased message, not
// tokenization: "corresponding" does not contain "request", but a keyword
// embedded mid-word does match. That is a known false-positive source and is
// kept as-is.
type LexicalRuleEvaluator struct {
	keywords       []string
	keywordWeight  int
	compoundWeight int
}

// NewLexicalRuleEvaluator creates an evaluator from the scoring configuration
func NewLexicalRuleEvaluator(cfg config.ScoringConfig) *LexicalRuleEvaluator {
	keywords := make([]string, len(cfg.Keywords))
	for i, kw := range cfg.Keywords {
		keywords[i] = strings.ToLower(kw)
	}
	return &LexicalRuleEvaluator{
		keywords:       keywords,
		keywordWeight:  cfg.KeywordWeight,
		compoundWeight: cfg.CompoundWeight,
	}
}

// Evaluate returns one finding per matching rule, in rule order. Rules are
// independent and non-exclusive: overlapping matches all fire, and the
// compound request+PIN rule stacks on top of any keyword findings it
// overlaps with.
func (e *LexicalRuleEvaluator) Evaluate(message string) []models.RuleFinding {
	var findings []models.RuleFinding
	lower := strings.ToLower(message)

	for _, kw := range e.keywords {
		if strings.Contains(lower, kw) {
			findings = append(findings, models.RuleFinding{
				Weight: e.keywordWeight,
				Reason: fmt.Sprintf("suspicious keyword detected: %q", kw),
			})
		}
	}

	// Separate, stackable escalation rule: a payment request that also
	// mentions a PIN is the classic collect-request fraud shape.
	if strings.Contains(lower, "request") && strings.Contains(lower, "pin") {
		findings = append(findings, models.RuleFinding{
			Weight: e.compoundWeight,
			Reason: "payment-request + PIN disclosure combination",
		})
	}

	return findings
}

// Keywords returns the configured phrase list, for publishing to clients
func (e *LexicalRuleEvaluator) Keywords() []string {
	out := make([]string, len(e.keywords))
	copy(out, e.keywords)
	return out
}
