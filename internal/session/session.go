// Package session holds the authenticated holder's locally cached account
// state. The cache is the only shared mutable state in the client; its two
// writers (a direct balance write after a transfer and a full refresh)
// both replace values wholesale rather than patching them.
package session

import (
	"sync"

	"github.com/shopspring/decimal"

	"arcbank-client/internal/domain"
)

// Store caches the account list for the current session.
type Store struct {
	mu       sync.RWMutex
	holder   domain.Client
	accounts []domain.Account
}

func NewStore(holder domain.Client, accounts []domain.Account) *Store {
	return &Store{holder: holder, accounts: append([]domain.Account(nil), accounts...)}
}

// Holder identifies the logged-in client.
func (s *Store) Holder() domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.holder
}

// Accounts returns a copy of the cached account list.
func (s *Store) Accounts() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Account(nil), s.accounts...)
}

// Account looks up a cached account by id.
func (s *Store) Account(id string) (domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Account{}, false
}

// SetBalance overwrites one account's balance with the ledger-provided
// value. The balance is copied from the ledger's response, never computed
// locally.
func (s *Store) SetBalance(accountID string, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			s.accounts[i].Balance = balance
			return
		}
	}
}

// ReplaceAll swaps in a freshly fetched account list.
func (s *Store) ReplaceAll(accounts []domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append([]domain.Account(nil), accounts...)
}
