package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type OperationType string

const (
	OpDeposit           OperationType = "DEPOSIT"
	OpWithdrawal        OperationType = "WITHDRAWAL"
	OpTransferOut       OperationType = "TRANSFER_OUT"
	OpTransferIn        OperationType = "TRANSFER_IN"
	OpInternalTransfer  OperationType = "INTERNAL_TRANSFER"
	OpInterbankTransfer OperationType = "INTERBANK_TRANSFER"
	OpReversal          OperationType = "REVERSAL"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusReversed  TransactionStatus = "REVERSED"
	StatusReturned  TransactionStatus = "RETURNED"
)

// Transaction is a raw movement record as fetched from the gateway. It is
// immutable once fetched; debit/credit semantics and refund eligibility are
// derived by the history package, never stored here.
//
// OccurredAt is kept in wire form because the gateway emits three different
// encodings depending on which backend service produced the record: a
// [year,month,day,hour,minute,second] tuple, an ISO-like string without a
// zone suffix, or a numeric epoch-millisecond value.
type Transaction struct {
	ID               string            `json:"transactionId"`
	Reference        string            `json:"reference"`
	OccurredAt       json.RawMessage   `json:"occurredAt"`
	Description      string            `json:"description"`
	OperationType    OperationType     `json:"operationType"`
	Amount           decimal.Decimal   `json:"amount"`
	ResultingBalance *decimal.Decimal  `json:"resultingBalance,omitempty"`
	Status           TransactionStatus `json:"status"`
	SourceAccountID  string            `json:"sourceAccountId"`
}
