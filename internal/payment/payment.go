package payment

import (
	"context"
	"errors"
)

var ErrDeclined = errors.New("payment declined")

type Charge struct {
	AmountCents int
	Description string

	// CardToken is the tokenized card produced by the front-end; the raw
	// card never reaches this service.
	CardToken  string
	PayerEmail string

	// IdempotencyKey dedupes retries of the same booking attempt.
	IdempotencyKey string
}

// Authorizer must approve a charge before a priced booking is written.
// A failed authorization means the booking writer is never invoked.
type Authorizer interface {
	Authorize(ctx context.Context, ch Charge) error
}
