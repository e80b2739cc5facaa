// Package beneficiary persists the holder's saved payees so a validated
// interbank destination can be reused without re-typing it.
package beneficiary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Beneficiary is a saved payee. OwnerName is the name the destination bank
// asserted when the account was last validated.
type Beneficiary struct {
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
	OwnerName     string `json:"owner_name"`
	BankName      string `json:"bank_name,omitempty"`
}

// Store manages the saved-payee file.
type Store struct {
	filePath      string
	Beneficiaries []Beneficiary `json:"beneficiaries"`
}

// NewStore opens (or creates) the payee file under the user config dir.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "arcbank-client")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return NewStoreAt(filepath.Join(configDir, "beneficiaries.json"))
}

// NewStoreAt opens a payee file at an explicit path.
func NewStoreAt(filePath string) (*Store, error) {
	store := &Store{
		filePath:      filePath,
		Beneficiaries: []Beneficiary{},
	}

	if _, err := os.Stat(store.filePath); err == nil {
		if err := store.Load(); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// Load reads payees from disk.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read beneficiaries file: %w", err)
	}

	if err := json.Unmarshal(data, &s.Beneficiaries); err != nil {
		return fmt.Errorf("failed to parse beneficiaries: %w", err)
	}

	return nil
}

// Save writes payees to disk.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.Beneficiaries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal beneficiaries: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write beneficiaries file: %w", err)
	}

	return nil
}

// Find looks up a saved payee by destination.
func (s *Store) Find(bankCode, accountNumber string) *Beneficiary {
	for i := range s.Beneficiaries {
		if s.Beneficiaries[i].BankCode == bankCode &&
			s.Beneficiaries[i].AccountNumber == accountNumber {
			return &s.Beneficiaries[i]
		}
	}
	return nil
}

// Add saves a payee, replacing any earlier entry for the same destination.
func (s *Store) Add(b Beneficiary) error {
	for i := range s.Beneficiaries {
		if s.Beneficiaries[i].BankCode == b.BankCode &&
			s.Beneficiaries[i].AccountNumber == b.AccountNumber {
			s.Beneficiaries[i] = b
			return s.Save()
		}
	}

	s.Beneficiaries = append(s.Beneficiaries, b)
	return s.Save()
}
