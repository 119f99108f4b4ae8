package models

import (
	"math"
	"strconv"
	"strings"
)

// Form field names accepted by ParseReport
const (
	FieldSender  = "sender"
	FieldAmount  = "amount"
	FieldMessage = "message"
	FieldUPIID   = "upi_id"
	FieldTxnType = "txn_type"
)

// ParseReport validates untyped form fields and builds a TransactionReport.
// No defaults are substituted: a missing or malformed amount is an InputError,
// never an implicit zero. The classifier-assisted variant additionally requires
// upi_id (collected but unused in scoring) and txn_type.
func ParseReport(fields map[string]string, policy Policy) (*TransactionReport, error) {
	sender := fields[FieldSender]
	if strings.TrimSpace(sender) == "" {
		return nil, NewInputError(FieldSender, "required field is empty")
	}

	message := fields[FieldMessage]
	if strings.TrimSpace(message) == "" {
		return nil, NewInputError(FieldMessage, "required field is empty")
	}

	rawAmount, ok := fields[FieldAmount]
	if !ok || strings.TrimSpace(rawAmount) == "" {
		return nil, NewInputError(FieldAmount, "required field is empty")
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(rawAmount), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, NewInputError(FieldAmount, "not a valid number")
	}
	if amount < 0 {
		return nil, NewInputError(FieldAmount, "must be non-negative")
	}

	report := &TransactionReport{
		Sender:  sender,
		Amount:  amount,
		Message: message,
	}

	if policy == PolicyClassifierAssisted {
		upiID := fields[FieldUPIID]
		if strings.TrimSpace(upiID) == "" {
			return nil, NewInputError(FieldUPIID, "required field is empty")
		}
		report.UPIID = upiID

		txnType, err := parseTransactionType(fields[FieldTxnType])
		if err != nil {
			return nil, err
		}
		report.TransactionType = txnType
	}

	return report, nil
}

func parseTransactionType(raw string) (TransactionType, error) {
	switch TransactionType(strings.TrimSpace(raw)) {
	case TransactionTypeSend:
		return TransactionTypeSend, nil
	case TransactionTypeReceive:
		return TransactionTypeReceive, nil
	case TransactionTypeRequest:
		return TransactionTypeRequest, nil
	case "":
		return "", NewInputError(FieldTxnType, "required field is empty")
	default:
		return "", NewInputError(FieldTxnType, "must be one of Send, Receive, Request")
	}
}
