package domain

import "github.com/shopspring/decimal"

// DomesticDestination is a beneficiary account inside the bank, resolved via
// an account-number lookup. DisplayName is whatever the sender typed; it is
// cosmetic and never verified against the ledger.
type DomesticDestination struct {
	AccountID   string
	DisplayName string
}

// InterbankDestination is a beneficiary account at another institution.
// OwnerName is asserted by the destination bank during validation and is not
// user-editable once set.
type InterbankDestination struct {
	BankCode      string
	AccountNumber string
	OwnerName     string
}

// TransferIntent is the immutable description of a requested transfer. For
// interbank transfers IdempotencyKey is minted once per intention and reused
// verbatim on every retry; the switch uses it to reject duplicates.
type TransferIntent struct {
	OperationType        OperationType   `json:"operationType"`
	SourceAccountID      string          `json:"sourceAccountId"`
	DestinationAccountID string          `json:"destinationAccountId,omitempty"`
	ExternalBankCode     string          `json:"externalBankCode,omitempty"`
	ExternalAccount      string          `json:"externalAccount,omitempty"`
	BeneficiaryName      string          `json:"beneficiaryName,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	Channel              string          `json:"channel"`
	Description          string          `json:"description"`
	IdempotencyKey       string          `json:"reference,omitempty"`
}

// TransferResult is the gateway's answer to a submitted intent. When
// ResultingBalance is present the cached balance is overwritten with it;
// when absent a full account refresh is triggered instead. Exactly one of
// the two happens per successful submission.
type TransferResult struct {
	ReferenceCode    string           `json:"referenceCode,omitempty"`
	TransactionID    string           `json:"transactionId,omitempty"`
	ResultingBalance *decimal.Decimal `json:"resultingBalance,omitempty"`
}
