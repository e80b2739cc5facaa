package transfer

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"arcbank-client/internal/domain"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

type fakeLookup struct {
	acc   *domain.Account
	err   error
	calls int
}

func (f *fakeLookup) AccountByNumber(_ context.Context, _ string) (*domain.Account, error) {
	f.calls++
	return f.acc, f.err
}

type fakeChecker struct {
	check domain.AccountCheck
	err   error
	calls int
}

func (f *fakeChecker) CheckDestination(_ context.Context, _, _ string) (domain.AccountCheck, error) {
	f.calls++
	return f.check, f.err
}

// fakeSubmitter replays a scripted sequence of outcomes and records every
// intent it was handed.
type fakeSubmitter struct {
	outcomes []submitOutcome
	intents  []domain.TransferIntent
}

type submitOutcome struct {
	res *domain.TransferResult
	err error
}

func (f *fakeSubmitter) SubmitTransfer(_ context.Context, intent domain.TransferIntent) (*domain.TransferResult, error) {
	f.intents = append(f.intents, intent)
	if len(f.outcomes) == 0 {
		return &domain.TransferResult{}, nil
	}
	next := f.outcomes[0]
	f.outcomes = f.outcomes[1:]
	return next.res, next.err
}

func (f *fakeSubmitter) calls() int { return len(f.intents) }

type fakeCache struct {
	balances map[string]decimal.Decimal
	replaced [][]domain.Account
	setCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{balances: map[string]decimal.Decimal{}}
}

func (f *fakeCache) SetBalance(accountID string, balance decimal.Decimal) {
	f.setCalls++
	f.balances[accountID] = balance
}

func (f *fakeCache) ReplaceAll(accounts []domain.Account) {
	f.replaced = append(f.replaced, accounts)
}

type fakeRefresher struct {
	accounts []domain.Account
	err      error
	calls    int
}

func (f *fakeRefresher) RefreshAccounts(_ context.Context) ([]domain.Account, error) {
	f.calls++
	return f.accounts, f.err
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
