// Package gateway is the typed client for the ARCBANK gateway, the single
// entry point in front of the clients, accounts and transactions services.
// It implements every collaborator contract the workflows consume.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"arcbank-client/internal/domain"
)

// StatusError is a non-2xx gateway response. Error() returns the backend
// message verbatim: interbank rejections embed their four-letter response
// code there and the errcode table picks it up unchanged.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string { return e.Message }

type Client struct {
	baseURL        string
	identification string
	apiKey         string
	http           *http.Client
	log            *log.Logger
}

// New builds a gateway client scoped to one account holder.
// identification is the holder's national id, used for the consolidated
// position lookup.
func New(baseURL, identification, apiKey string, timeout time.Duration) *Client {
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &Client{
		baseURL:        baseURL,
		identification: identification,
		apiKey:         apiKey,
		http:           &http.Client{Timeout: timeout},
		log:            log.NewWithOptions(os.Stderr, log.Options{Prefix: "gateway"}),
	}
}

// ClientByIdentification resolves a holder's internal client id from their
// national id.
func (c *Client) ClientByIdentification(ctx context.Context, identification string) (*domain.Client, error) {
	var holder domain.Client
	if err := c.do(ctx, http.MethodGet, "/api/v1/clients/identification/"+identification, nil, &holder); err != nil {
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}
	return &holder, nil
}

// AccountByNumber looks a savings account up by its number. A nil account
// with a nil error means the number is unknown.
func (c *Client) AccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	var acc domain.Account
	err := c.do(ctx, http.MethodGet, "/api/v1/accounts/savings/lookup/"+number, nil, &acc)
	if err != nil {
		var serr *StatusError
		if errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}
	return &acc, nil
}

// ConsolidatedPosition returns the holder's accounts with balances. The
// gateway has no accounts-by-client endpoint, so this resolves the internal
// client id and filters the full list, the same way the web client did.
func (c *Client) ConsolidatedPosition(ctx context.Context) ([]domain.Account, error) {
	holder, err := c.ClientByIdentification(ctx, c.identification)
	if err != nil {
		return nil, err
	}

	var all []domain.Account
	if err := c.do(ctx, http.MethodGet, "/api/v1/accounts/savings", nil, &all); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	var mine []domain.Account
	for _, a := range all {
		if a.ClientID == holder.ClientID {
			mine = append(mine, a)
		}
	}
	c.log.Info("fetched consolidated position", "accounts", len(mine))
	return mine, nil
}

// RefreshAccounts re-fetches the holder's account list; it is the refresh
// arm of balance reconciliation.
func (c *Client) RefreshAccounts(ctx context.Context) ([]domain.Account, error) {
	return c.ConsolidatedPosition(ctx)
}

// Transactions fetches the raw movement history of one account. Ordering
// is whatever the backend returns; display ordering is the classifier's
// job.
func (c *Client) Transactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions/account/"+accountID, nil, &txs); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	c.log.Info("fetched transactions", "account", accountID, "count", len(txs))
	return txs, nil
}

// SubmitTransfer sends a transfer intent to the ledger.
func (c *Client) SubmitTransfer(ctx context.Context, intent domain.TransferIntent) (*domain.TransferResult, error) {
	var res domain.TransferResult
	if err := c.do(ctx, http.MethodPost, "/api/transactions", intent, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CheckDestination asks the switch whether an account exists at another
// institution.
func (c *Client) CheckDestination(ctx context.Context, bankCode, accountNumber string) (domain.AccountCheck, error) {
	req := map[string]string{
		"targetBankCode":      bankCode,
		"targetAccountNumber": accountNumber,
	}
	var check domain.AccountCheck
	if err := c.do(ctx, http.MethodPost, "/api/transactions/validate-account", req, &check); err != nil {
		return domain.AccountCheck{}, fmt.Errorf("destination check failed: %w", err)
	}
	return check, nil
}

// Banks lists the institutions registered on the switch.
func (c *Client) Banks(ctx context.Context) ([]domain.Bank, error) {
	var banks []domain.Bank
	if err := c.do(ctx, http.MethodGet, "/api/transactions/network/banks", nil, &banks); err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	return banks, nil
}

// RequestRefund asks for a reversal of a transaction by id.
func (c *Client) RequestRefund(ctx context.Context, transactionID, reason string) error {
	body := map[string]string{"reason": reason}
	return c.do(ctx, http.MethodPost, "/api/transactions/"+transactionID+"/refund", body, nil)
}

// RequestRefundByReference asks for a reversal by transfer reference, for
// records where only the switch reference is known.
func (c *Client) RequestRefundByReference(ctx context.Context, reference, reason string) error {
	body := map[string]string{"reason": reason}
	return c.do(ctx, http.MethodPost, "/api/transactions/reference/"+reference+"/refund", body, nil)
}

// RefundReasons fetches the catalog of accepted reversal reasons.
func (c *Client) RefundReasons(ctx context.Context) ([]string, error) {
	var reasons []string
	if err := c.do(ctx, http.MethodGet, "/api/transactions/refund-reasons", nil, &reasons); err != nil {
		return nil, fmt.Errorf("failed to fetch refund reasons: %w", err)
	}
	return reasons, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the backend's own message from an error body,
// falling back to the HTTP status text.
func errorMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}
