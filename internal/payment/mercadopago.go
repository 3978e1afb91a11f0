package payment

import (
	"context"
	"fmt"
	"log"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
)

type MercadoPago struct {
	payments mppayment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{payments: mppayment.NewClient(cfg)}, nil
}

func (m *MercadoPago) Authorize(ctx context.Context, ch Charge) error {
	req := mppayment.Request{
		TransactionAmount: float64(ch.AmountCents) / 100,
		Description:       ch.Description,
		Token:             ch.CardToken,
		Installments:      1,
		Payer: &mppayment.PayerRequest{
			Email: ch.PayerEmail,
		},
	}

	res, err := m.payments.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	switch res.Status {
	case "approved", "authorized":
		return nil
	default:
		return ErrDeclined
	}
}

// Disabled skips the gate entirely. Used when no gateway credentials are
// configured (local dev, test salons without online payment).
type Disabled struct{}

func (Disabled) Authorize(ctx context.Context, ch Charge) error {
	log.Printf("payment gateway disabled, skipping charge of %d cents", ch.AmountCents)
	return nil
}

var (
	_ Authorizer = (*MercadoPago)(nil)
	_ Authorizer = Disabled{}
)
