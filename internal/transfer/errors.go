package transfer

import "errors"

// Local failures, resolved without a collaborator call. They leave the
// workflow in its current step so the user can correct the input.
var (
	ErrMissingDestination = errors.New("destination fields are incomplete")
	ErrAmountNotPositive  = errors.New("amount must be greater than zero")
)

// Destination failures. No submission is attempted and no idempotency key
// has been allocated yet.
var (
	ErrDestinationNotFound = errors.New("destination account not found")
	ErrSelfTransfer        = errors.New("cannot transfer to the originating account")
	ErrNotValidated        = errors.New("destination account has not been validated")
)
