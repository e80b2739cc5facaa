package transfer

import (
	"context"

	"github.com/shopspring/decimal"

	"arcbank-client/internal/domain"
)

// AccountLookup resolves a destination account inside the bank. A nil
// account with a nil error means the number is unknown.
type AccountLookup interface {
	AccountByNumber(ctx context.Context, number string) (*domain.Account, error)
}

// DestinationChecker probes the switch for an account at another
// institution.
type DestinationChecker interface {
	CheckDestination(ctx context.Context, bankCode, accountNumber string) (domain.AccountCheck, error)
}

// Submitter sends a transfer intent to the ledger. A returned error carries
// the raw backend message; interbank rejections embed a four-letter response
// code consumed by errcode.Table.
type Submitter interface {
	SubmitTransfer(ctx context.Context, intent domain.TransferIntent) (*domain.TransferResult, error)
}

// AccountRefresher re-fetches the holder's full account list from the
// ledger.
type AccountRefresher interface {
	RefreshAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountCache is the locally held account state. Writers replace values
// wholesale; nothing is patched incrementally.
type AccountCache interface {
	SetBalance(accountID string, balance decimal.Decimal)
	ReplaceAll(accounts []domain.Account)
}
