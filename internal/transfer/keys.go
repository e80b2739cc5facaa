package transfer

import "github.com/google/uuid"

// KeyGenerator mints idempotency keys. A key is allocated once per transfer
// intention and reused verbatim on every retry of that intention's
// submission; the switch treats a repeated key as a duplicate, not a new
// transfer.
type KeyGenerator func() string

// NewKey is the default generator: a random 128-bit UUID.
func NewKey() string {
	return uuid.NewString()
}
