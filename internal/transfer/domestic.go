package transfer

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"arcbank-client/internal/domain"
)

// Domestic drives a transfer between two accounts of the same institution:
// COLLECT_DESTINATION -> CONFIRM_AMOUNT -> SUBMITTING -> SUCCESS, with a
// backward move from CONFIRM_AMOUNT allowed.
//
// Domestic transfers carry no idempotency key. Both legs live on the same
// ledger, so there is no cross-system retry ambiguity for a key to resolve;
// the asymmetry with the interbank workflow is deliberate.
type Domestic struct {
	machine

	lookup     AccountLookup
	submitter  Submitter
	reconciler *Reconciler
	channel    string
	log        *log.Logger

	sourceAccountID string
	destination     *domain.DomesticDestination
	lastError       string
	result          *domain.TransferResult
}

// NewDomestic starts a workflow for one transfer attempt. sourceAccountID
// is the initially selected origin; the confirmation step may change it.
func NewDomestic(lookup AccountLookup, submitter Submitter, reconciler *Reconciler, channel, sourceAccountID string, logger *log.Logger) *Domestic {
	return &Domestic{
		machine:         newMachine(),
		lookup:          lookup,
		submitter:       submitter,
		reconciler:      reconciler,
		channel:         channel,
		log:             logger,
		sourceAccountID: sourceAccountID,
	}
}

// LastError is the displayable message from the most recent failure.
func (w *Domestic) LastError() string { return w.lastError }

// Destination is the resolved beneficiary, nil until the destination step
// succeeds.
func (w *Domestic) Destination() *domain.DomesticDestination { return w.destination }

// Result is the submission outcome, nil until the workflow reaches SUCCESS.
func (w *Domestic) Result() *domain.TransferResult { return w.result }

// SetDestination resolves the beneficiary by account number and advances to
// the confirmation step. The holder name is kept for display only; it is
// not verified against the ledger for domestic transfers.
func (w *Domestic) SetDestination(ctx context.Context, accountNumber, holderName string) error {
	if err := w.require(StateCollectDestination); err != nil {
		return err
	}
	if accountNumber == "" || holderName == "" {
		return w.fail(ErrMissingDestination)
	}

	acc, err := w.lookup.AccountByNumber(ctx, accountNumber)
	if err != nil {
		return w.fail(fmt.Errorf("destination lookup failed: %w", err))
	}
	if acc == nil {
		return w.fail(ErrDestinationNotFound)
	}
	if acc.ID == w.sourceAccountID {
		return w.fail(ErrSelfTransfer)
	}

	w.destination = &domain.DomesticDestination{AccountID: acc.ID, DisplayName: holderName}
	w.lastError = ""
	return w.transition(StateConfirmAmount)
}

// Back returns to the destination step.
func (w *Domestic) Back() error {
	return w.transition(StateCollectDestination)
}

// Submit builds the intent and sends it. On rejection the workflow returns
// to the confirmation step with the failure recorded; it never retries on
// its own.
func (w *Domestic) Submit(ctx context.Context, sourceAccountID string, amount decimal.Decimal) error {
	if err := w.require(StateConfirmAmount); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return w.fail(ErrAmountNotPositive)
	}
	if w.destination.AccountID == sourceAccountID {
		return w.fail(ErrSelfTransfer)
	}
	w.sourceAccountID = sourceAccountID

	intent := domain.TransferIntent{
		OperationType:        domain.OpInternalTransfer,
		SourceAccountID:      sourceAccountID,
		DestinationAccountID: w.destination.AccountID,
		Amount:               amount,
		Channel:              w.channel,
		Description:          "INTERNAL TRF: " + w.destination.DisplayName,
	}

	if err := w.transition(StateSubmitting); err != nil {
		return err
	}

	res, err := w.submitter.SubmitTransfer(ctx, intent)
	if err != nil {
		w.lastError = err.Error()
		w.log.Warn("domestic transfer rejected", "source", sourceAccountID, "err", err)
		if terr := w.transition(StateConfirmAmount); terr != nil {
			return terr
		}
		return err
	}

	if err := w.reconciler.Apply(ctx, sourceAccountID, *res); err != nil {
		w.log.Error("balance reconciliation failed", "source", sourceAccountID, "err", err)
	}

	w.result = res
	w.lastError = ""
	w.log.Info("domestic transfer completed", "source", sourceAccountID, "reference", res.ReferenceCode)
	return w.transition(StateSuccess)
}

// fail records a displayable message and keeps the current step.
func (w *Domestic) fail(err error) error {
	w.lastError = err.Error()
	return err
}
