package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() map[string]string {
	return map[string]string{
		FieldSender:  "merchant@okbank",
		FieldAmount:  "250.50",
		FieldMessage: "Payment successful",
		FieldUPIID:   "merchant@okbank",
		FieldTxnType: "Send",
	}
}

func TestParseReport_RuleOnly(t *testing.T) {
	fields := map[string]string{
		FieldSender:  "merchant@okbank",
		FieldAmount:  "250.50",
		FieldMessage: "Payment successful",
	}

	report, err := ParseReport(fields, PolicyRuleOnly)
	require.NoError(t, err)

	assert.Equal(t, "merchant@okbank", report.Sender)
	assert.Equal(t, 250.50, report.Amount)
	assert.Equal(t, "Payment successful", report.Message)
	assert.Empty(t, report.UPIID)
	assert.Empty(t, report.TransactionType)
}

func TestParseReport_ClassifierAssisted(t *testing.T) {
	report, err := ParseReport(validFields(), PolicyClassifierAssisted)
	require.NoError(t, err)

	assert.Equal(t, "merchant@okbank", report.UPIID)
	assert.Equal(t, TransactionTypeSend, report.TransactionType)
}

func TestParseReport_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
		policy Policy
		field  string
	}{
		{
			name:   "missing sender",
			mutate: func(f map[string]string) { delete(f, FieldSender) },
			policy: PolicyRuleOnly,
			field:  FieldSender,
		},
		{
			name:   "blank sender",
			mutate: func(f map[string]string) { f[FieldSender] = "   " },
			policy: PolicyRuleOnly,
			field:  FieldSender,
		},
		{
			name:   "missing message",
			mutate: func(f map[string]string) { delete(f, FieldMessage) },
			policy: PolicyRuleOnly,
			field:  FieldMessage,
		},
		{
			name:   "missing amount",
			mutate: func(f map[string]string) { delete(f, FieldAmount) },
			policy: PolicyRuleOnly,
			field:  FieldAmount,
		},
		{
			name:   "non-numeric amount",
			mutate: func(f map[string]string) { f[FieldAmount] = "lots" },
			policy: PolicyRuleOnly,
			field:  FieldAmount,
		},
		{
			name:   "NaN amount",
			mutate: func(f map[string]string) { f[FieldAmount] = "NaN" },
			policy: PolicyRuleOnly,
			field:  FieldAmount,
		},
		{
			name:   "infinite amount",
			mutate: func(f map[string]string) { f[FieldAmount] = "+Inf" },
			policy: PolicyRuleOnly,
			field:  FieldAmount,
		},
		{
			name:   "negative amount",
			mutate: func(f map[string]string) { f[FieldAmount] = "-10" },
			policy: PolicyRuleOnly,
			field:  FieldAmount,
		},
		{
			name:   "missing upi_id under classifier policy",
			mutate: func(f map[string]string) { delete(f, FieldUPIID) },
			policy: PolicyClassifierAssisted,
			field:  FieldUPIID,
		},
		{
			name:   "missing txn_type under classifier policy",
			mutate: func(f map[string]string) { delete(f, FieldTxnType) },
			policy: PolicyClassifierAssisted,
			field:  FieldTxnType,
		},
		{
			name:   "unknown txn_type",
			mutate: func(f map[string]string) { f[FieldTxnType] = "Transfer" },
			policy: PolicyClassifierAssisted,
			field:  FieldTxnType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			tt.mutate(fields)

			report, err := ParseReport(fields, tt.policy)
			require.Error(t, err)
			assert.Nil(t, report)
			require.True(t, IsInputError(err))

			var ie *InputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.field, ie.Field)
		})
	}
}

func TestParseReport_UPIFieldsIgnoredForRuleOnly(t *testing.T) {
	fields := validFields()
	delete(fields, FieldUPIID)
	delete(fields, FieldTxnType)

	_, err := ParseReport(fields, PolicyRuleOnly)
	assert.NoError(t, err)
}

func TestParseReport_ZeroAmountAllowed(t *testing.T) {
	fields := validFields()
	fields[FieldAmount] = "0"

	report, err := ParseReport(fields, PolicyRuleOnly)
	require.NoError(t, err)
	assert.Zero(t, report.Amount)
}
