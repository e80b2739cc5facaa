package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"arcbank-client/internal/domain"
	"arcbank-client/internal/errcode"
)

// PendingReference is exposed when the switch returned neither a reference
// code nor a transaction id for a successful submission.
const PendingReference = "PENDING"

// InterbankConfig wires an interbank workflow. Codes, Keys, Narrate and
// NarrationInterval have working defaults; the collaborators do not.
type InterbankConfig struct {
	Checker    DestinationChecker
	Submitter  Submitter
	Reconciler *Reconciler
	Logger     *log.Logger

	Channel string
	// Codes translates raw switch rejections for display. Defaults to
	// errcode.Default().
	Codes errcode.Table
	// Keys mints idempotency keys. Defaults to NewKey.
	Keys KeyGenerator
	// Narrate, when set, receives the rotating progress messages while a
	// submission is in flight.
	Narrate           func(string)
	NarrationInterval time.Duration
}

// Interbank drives a transfer to another institution through the switch.
// On top of the shared step machine it enforces two extra rules: the
// destination step cannot be left until the validation gate reports VALID,
// and the idempotency key minted at that transition is reused verbatim for
// every retry of the same intention.
type Interbank struct {
	machine
	cfg  InterbankConfig
	gate *ValidationGate
	log  *log.Logger

	bankName        string
	idempotencyKey  string
	sourceAccountID string
	lastError       string
	result          *domain.TransferResult
	reference       string
}

func NewInterbank(cfg InterbankConfig) *Interbank {
	if cfg.Codes == nil {
		cfg.Codes = errcode.Default()
	}
	if cfg.Keys == nil {
		cfg.Keys = NewKey
	}
	if cfg.NarrationInterval <= 0 {
		cfg.NarrationInterval = DefaultNarrationInterval
	}
	return &Interbank{
		machine: newMachine(),
		cfg:     cfg,
		gate:    NewValidationGate(cfg.Checker, cfg.Logger),
		log:     cfg.Logger,
	}
}

// Gate exposes the destination validation state machine.
func (w *Interbank) Gate() *ValidationGate { return w.gate }

// LastError is the displayable message from the most recent failure;
// switch rejections arrive here already translated.
func (w *Interbank) LastError() string { return w.lastError }

// IdempotencyKey is empty until the destination is confirmed.
func (w *Interbank) IdempotencyKey() string { return w.idempotencyKey }

// Result is the submission outcome, nil until the workflow reaches SUCCESS.
func (w *Interbank) Result() *domain.TransferResult { return w.result }

// Reference is the receipt identifier: the switch's reference code, the
// transaction id when no code was issued, or PendingReference when neither
// is present.
func (w *Interbank) Reference() string { return w.reference }

// SetDestination records the entered bank and account number. Editing
// either field invalidates any prior validation.
func (w *Interbank) SetDestination(bankCode, accountNumber, bankName string) error {
	if err := w.require(StateCollectDestination); err != nil {
		return err
	}
	w.bankName = bankName
	w.gate.SetDestination(bankCode, accountNumber)
	return nil
}

// Validate runs the destination check for the entered fields.
func (w *Interbank) Validate(ctx context.Context) (GateStatus, error) {
	if err := w.require(StateCollectDestination); err != nil {
		return w.gate.Status(), err
	}
	return w.gate.Validate(ctx), nil
}

// ConfirmDestination commits to the validated destination and advances to
// the confirmation step. This is the one place an idempotency key is
// minted: confirming a destination starts a new transfer intention.
func (w *Interbank) ConfirmDestination() error {
	if err := w.require(StateCollectDestination); err != nil {
		return err
	}
	if w.gate.Status() != GateValid {
		return w.fail(ErrNotValidated)
	}
	w.idempotencyKey = w.cfg.Keys()
	w.lastError = ""
	return w.transition(StateConfirmAmount)
}

// Back returns to the destination step.
func (w *Interbank) Back() error {
	return w.transition(StateCollectDestination)
}

// Submit sends the intent through the switch. On rejection the workflow
// returns to the confirmation step with the same idempotency key intact, so
// a user-initiated retry cannot duplicate the transfer.
func (w *Interbank) Submit(ctx context.Context, sourceAccountID string, amount decimal.Decimal) error {
	if err := w.require(StateConfirmAmount); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return w.fail(ErrAmountNotPositive)
	}
	w.sourceAccountID = sourceAccountID

	intent := domain.TransferIntent{
		OperationType:    domain.OpInterbankTransfer,
		SourceAccountID:  sourceAccountID,
		ExternalBankCode: w.gate.BankCode(),
		ExternalAccount:  w.gate.AccountNumber(),
		BeneficiaryName:  w.gate.OwnerName(),
		Amount:           amount,
		Channel:          w.cfg.Channel,
		Description:      fmt.Sprintf("INTERBANK: %s - REF: %s", w.displayBank(), w.gate.OwnerName()),
		IdempotencyKey:   w.idempotencyKey,
	}

	if err := w.transition(StateSubmitting); err != nil {
		return err
	}

	n := newNarrator(w.narrationMessages(), w.cfg.NarrationInterval, w.cfg.Narrate)
	n.start()
	res, err := w.cfg.Submitter.SubmitTransfer(ctx, intent)
	n.stop()

	if err != nil {
		w.lastError = w.cfg.Codes.Translate(err.Error())
		w.log.Warn("interbank transfer rejected",
			"bank", w.gate.BankCode(), "key", w.idempotencyKey, "err", err)
		if terr := w.transition(StateConfirmAmount); terr != nil {
			return terr
		}
		return err
	}

	if err := w.cfg.Reconciler.Apply(ctx, sourceAccountID, *res); err != nil {
		w.log.Error("balance reconciliation failed", "source", sourceAccountID, "err", err)
	}

	w.result = res
	w.reference = receiptReference(res)
	w.lastError = ""
	w.log.Info("interbank transfer completed",
		"bank", w.gate.BankCode(), "key", w.idempotencyKey, "reference", w.reference)
	return w.transition(StateSuccess)
}

func receiptReference(res *domain.TransferResult) string {
	switch {
	case res.ReferenceCode != "":
		return res.ReferenceCode
	case res.TransactionID != "":
		return res.TransactionID
	default:
		return PendingReference
	}
}

func (w *Interbank) displayBank() string {
	if w.bankName != "" {
		return w.bankName
	}
	return w.gate.BankCode()
}

func (w *Interbank) narrationMessages() []string {
	return []string{
		"Connecting to " + w.displayBank() + "...",
		"Verifying destination account...",
		"Checking funds availability...",
		"Executing transfer on the ISO 20022 switch...",
		"Receiving final confirmation...",
	}
}

func (w *Interbank) fail(err error) error {
	w.lastError = err.Error()
	return err
}
