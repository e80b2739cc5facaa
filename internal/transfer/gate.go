package transfer

import (
	"context"

	"github.com/charmbracelet/log"
)

type GateStatus string

const (
	GateIdle       GateStatus = "IDLE"
	GateValidating GateStatus = "VALIDATING"
	GateValid      GateStatus = "VALID"
	GateInvalid    GateStatus = "INVALID"
)

// A negative lookup and a technical failure produce the same message on
// purpose: distinguishing them would let a caller enumerate accounts at
// other institutions.
const (
	msgMissingInput  = "Select a bank and enter the account number first."
	msgCannotResolve = "Could not validate the account (technical error or it does not exist)."
)

// ValidationGate guards the interbank workflow's destination step. The
// submission path is unreachable until the gate reports VALID for the
// destination currently entered; editing either field invalidates any
// earlier result.
type ValidationGate struct {
	checker DestinationChecker
	log     *log.Logger

	status        GateStatus
	message       string
	bankCode      string
	accountNumber string
	ownerName     string
}

func NewValidationGate(checker DestinationChecker, logger *log.Logger) *ValidationGate {
	return &ValidationGate{
		checker: checker,
		log:     logger,
		status:  GateIdle,
	}
}

func (g *ValidationGate) Status() GateStatus { return g.status }
func (g *ValidationGate) Message() string    { return g.message }

// OwnerName is the beneficiary name asserted by the destination bank. Only
// meaningful while the gate is VALID.
func (g *ValidationGate) OwnerName() string { return g.ownerName }

func (g *ValidationGate) BankCode() string      { return g.bankCode }
func (g *ValidationGate) AccountNumber() string { return g.accountNumber }

// SetDestination records the fields as currently entered. A change to
// either one resets the gate to IDLE: a stale VALID must never authorize a
// submission.
func (g *ValidationGate) SetDestination(bankCode, accountNumber string) {
	if bankCode == g.bankCode && accountNumber == g.accountNumber {
		return
	}
	g.bankCode = bankCode
	g.accountNumber = accountNumber
	g.status = GateIdle
	g.message = ""
	g.ownerName = ""
}

// Validate probes the switch for the entered destination. Empty fields fail
// locally without touching the collaborator.
func (g *ValidationGate) Validate(ctx context.Context) GateStatus {
	if g.bankCode == "" || g.accountNumber == "" {
		g.status = GateInvalid
		g.message = msgMissingInput
		return g.status
	}

	g.status = GateValidating
	g.message = ""
	g.ownerName = ""

	check, err := g.checker.CheckDestination(ctx, g.bankCode, g.accountNumber)
	if err != nil || !check.Exists {
		if err != nil {
			g.log.Warn("destination validation failed", "bank", g.bankCode, "err", err)
		}
		g.status = GateInvalid
		g.message = msgCannotResolve
		return g.status
	}

	g.status = GateValid
	g.ownerName = check.OwnerName
	g.message = "Account verified: " + check.OwnerName
	g.log.Info("destination validated", "bank", g.bankCode, "owner", check.OwnerName)
	return g.status
}
