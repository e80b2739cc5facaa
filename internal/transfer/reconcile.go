package transfer

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"arcbank-client/internal/domain"
)

// BalanceUpdate is the reconciliation decision after a successful
// submission: either the ledger told us the resulting balance, or we must
// re-fetch. Exactly one of the two runs; applying both would let a refresh
// race the direct write and overwrite it with a stale value.
type BalanceUpdate interface {
	isBalanceUpdate()
}

// DirectBalance carries the ledger's own post-transfer balance.
type DirectBalance struct {
	Balance decimal.Decimal
}

// RequiresRefresh means the result carried no balance and the full account
// list must be fetched again.
type RequiresRefresh struct{}

func (DirectBalance) isBalanceUpdate()   {}
func (RequiresRefresh) isBalanceUpdate() {}

// PlanBalanceUpdate inspects a transfer result and picks the reconciliation
// path.
func PlanBalanceUpdate(res domain.TransferResult) BalanceUpdate {
	if res.ResultingBalance != nil {
		return DirectBalance{Balance: *res.ResultingBalance}
	}
	return RequiresRefresh{}
}

// Reconciler brings the cached account state back in line with the ledger
// after a transfer completes.
type Reconciler struct {
	cache     AccountCache
	refresher AccountRefresher
	log       *log.Logger
}

func NewReconciler(cache AccountCache, refresher AccountRefresher, logger *log.Logger) *Reconciler {
	return &Reconciler{cache: cache, refresher: refresher, log: logger}
}

// Apply reconciles the source account after a successful submission.
func (r *Reconciler) Apply(ctx context.Context, sourceAccountID string, res domain.TransferResult) error {
	switch plan := PlanBalanceUpdate(res).(type) {
	case DirectBalance:
		r.cache.SetBalance(sourceAccountID, plan.Balance)
		r.log.Debug("balance reconciled from result", "account", sourceAccountID)
		return nil
	case RequiresRefresh:
		accounts, err := r.refresher.RefreshAccounts(ctx)
		if err != nil {
			return fmt.Errorf("account refresh failed: %w", err)
		}
		r.cache.ReplaceAll(accounts)
		r.log.Debug("balance reconciled via refresh", "account", sourceAccountID)
		return nil
	default:
		return fmt.Errorf("unknown balance update plan %T", plan)
	}
}
