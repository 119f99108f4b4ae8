package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"payguard-lab/internal/config"
)

func TestTransactionRuleEvaluator_Evaluate(t *testing.T) {
	evaluator := NewTransactionRuleEvaluator(config.DefaultScoring())

	tests := []struct {
		name        string
		amount      float64
		sender      string
		wantWeights int
	}{
		{
			name:        "small amount from named sender",
			amount:      100,
			sender:      "merchant@okbank",
			wantWeights: 0,
		},
		{
			name:        "amount at threshold does not fire",
			amount:      5000,
			sender:      "merchant@okbank",
			wantWeights: 0,
		},
		{
			name:        "amount just above threshold fires",
			amount:      5000.01,
			sender:      "merchant@okbank",
			wantWeights: 20,
		},
		{
			name:        "ten digit sender fires",
			amount:      100,
			sender:      "9876543210",
			wantWeights: 10,
		},
		{
			name:        "nine digit sender does not fire",
			amount:      100,
			sender:      "987654321",
			wantWeights: 0,
		},
		{
			name:        "digit run embedded in a handle fires",
			amount:      100,
			sender:      "9876543210@upi",
			wantWeights: 10,
		},
		{
			name:        "eleven digit run still fires",
			amount:      100,
			sender:      "98765432109",
			wantWeights: 10,
		},
		{
			name:        "digits broken by separators do not fire",
			amount:      100,
			sender:      "98765-43210",
			wantWeights: 0,
		},
		{
			name:        "both rules stack",
			amount:      9999,
			sender:      "9876543210",
			wantWeights: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := evaluator.Evaluate(tt.amount, tt.sender)

			var total int
			for _, f := range findings {
				total += f.Weight
				assert.NotEmpty(t, f.Reason)
			}
			assert.Equal(t, tt.wantWeights, total)
		})
	}
}
