// Package history derives display semantics from raw movement records:
// debit/credit direction, display type, refund eligibility and ordering.
// Derived fields are computed on every view and never stored.
package history

import (
	"sort"
	"time"

	"arcbank-client/internal/domain"
)

// RefundWindow is how long after execution an outgoing transfer may still be
// offered for reversal.
const RefundWindow = 24 * time.Hour

// Display names for interbank legs; every other operation type passes
// through unchanged.
const (
	displayInterbankOut = "OUTGOING INTERBANK"
	displayInterbankIn  = "INCOMING INTERBANK"
)

var debitOps = map[domain.OperationType]bool{
	domain.OpWithdrawal:        true,
	domain.OpTransferOut:       true,
	domain.OpInternalTransfer:  true,
	domain.OpInterbankTransfer: true,
	domain.OpReversal:          true,
}

var refundableOps = map[domain.OperationType]bool{
	domain.OpTransferOut:       true,
	domain.OpInterbankTransfer: true,
}

// ClassifiedTransaction pairs a raw record with its derived fields.
type ClassifiedTransaction struct {
	Raw          domain.Transaction
	OccurredAt   time.Time
	IsDebit      bool
	DisplayType  string
	IsRefundable bool
}

// Classify derives display semantics for every record in txs as seen from
// viewedAccountID and returns them most recent first. The sort is stable:
// records with equal timestamps keep their fetch order.
func Classify(txs []domain.Transaction, viewedAccountID string) []ClassifiedTransaction {
	return ClassifyAt(txs, viewedAccountID, time.Now())
}

// ClassifyAt is Classify with an explicit evaluation time for the refund
// window.
func ClassifyAt(txs []domain.Transaction, viewedAccountID string, now time.Time) []ClassifiedTransaction {
	out := make([]ClassifiedTransaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, classifyOne(tx, viewedAccountID, now))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	return out
}

func classifyOne(tx domain.Transaction, viewedAccountID string, now time.Time) ClassifiedTransaction {
	occurredAt := parseTimestamp(tx.OccurredAt, now)
	isDebit := debitOps[tx.OperationType] && tx.SourceAccountID == viewedAccountID

	displayType := string(tx.OperationType)
	switch tx.OperationType {
	case domain.OpInterbankTransfer:
		displayType = displayInterbankOut
	case domain.OpTransferIn:
		displayType = displayInterbankIn
	}

	refundable := now.Sub(occurredAt) < RefundWindow &&
		tx.Status != domain.StatusReversed &&
		tx.Status != domain.StatusReturned &&
		isDebit &&
		refundableOps[tx.OperationType]

	return ClassifiedTransaction{
		Raw:          tx,
		OccurredAt:   occurredAt,
		IsDebit:      isDebit,
		DisplayType:  displayType,
		IsRefundable: refundable,
	}
}
