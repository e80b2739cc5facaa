package domain

import "github.com/shopspring/decimal"

type AccountType string

const (
	AccountSavings  AccountType = "SAVINGS"
	AccountChecking AccountType = "CHECKING"
)

// Account is the locally cached view of a ledger account. The balance is
// whatever the ledger last told us; it is never derived from transaction
// deltas on this side.
type Account struct {
	ID       string          `json:"id"`
	ClientID string          `json:"clientId"`
	Number   string          `json:"number"`
	Type     AccountType     `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
}

// Client identifies an account holder inside the bank.
type Client struct {
	ClientID string `json:"clientId"`
	FullName string `json:"fullName"`
}

// Bank is an institution registered on the interbank switch.
type Bank struct {
	Code string `json:"code"`
	Name string `json:"name"`
	BIN  string `json:"bin,omitempty"`
}

// AccountCheck is the switch's answer to a destination existence probe.
type AccountCheck struct {
	Exists    bool   `json:"exists"`
	OwnerName string `json:"ownerName,omitempty"`
}
