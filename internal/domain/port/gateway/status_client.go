package gateway

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// StatusReport is the gateway's answer to a status query
type StatusReport struct {
	TxRef         string
	State         entity.PaymentState
	RawStatus     string
	AmountInCents int64
}

// StatusClient queries the payment gateway for the state of a payment.
// Implementations honour ctx cancellation and report transport failures as
// ErrGatewayUnreachable or ErrGatewayTimeout.
type StatusClient interface {
	QueryStatus(ctx context.Context, txRef string) (*StatusReport, error)
}
