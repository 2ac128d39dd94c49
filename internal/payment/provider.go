package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/BruksfildServices01/shop-api/internal/config"
)

// ErrProvider wraps every failure reported by, or on the way to, the
// payment provider.
var ErrProvider = errors.New("payment_provider_error")

type Line struct {
	Name  string
	Price float64
	Qty   int
}

type InvoiceRequest struct {
	ExternalID  string
	Amount      float64
	Currency    string
	PayerEmail  string
	Description string
	SuccessURL  string
	FailureURL  string
	Lines       []Line
}

type Invoice struct {
	ID     string
	URL    string
	Status string
}

// Provider creates a hosted invoice the buyer is redirected to. A call is
// a single attempt bounded by the provider's timeout.
type Provider interface {
	CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error)
}

// New selects the provider named by PAYMENT_PROVIDER.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.PaymentProvider {
	case config.PaymentXendit:
		return NewXendit(
			cfg.XenditSecretKey,
			cfg.XenditBaseURL,
			&http.Client{Timeout: cfg.PaymentTimeout},
		), nil
	case config.PaymentMercadoPago:
		return NewMercadoPago(cfg.MercadoPagoAccessToken, cfg.PaymentTimeout)
	}
	return nil, fmt.Errorf("unknown payment provider %q", cfg.PaymentProvider)
}
