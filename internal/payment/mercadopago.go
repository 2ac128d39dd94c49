package payment

import (
	"context"
	"fmt"
	"time"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// preferenceCreator is the slice of the SDK preference client in use.
type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPago maps an invoice onto a checkout preference. The buyer pays
// on the preference's init point.
type MercadoPago struct {
	client  preferenceCreator
	timeout time.Duration
}

var _ Provider = (*MercadoPago)(nil)

func NewMercadoPago(accessToken string, timeout time.Duration) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{client: preference.NewClient(cfg), timeout: timeout}, nil
}

func (m *MercadoPago) CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	items := make([]preference.ItemRequest, 0, len(req.Lines))
	for _, l := range req.Lines {
		items = append(items, preference.ItemRequest{
			Title:      l.Name,
			Quantity:   l.Qty,
			UnitPrice:  l.Price,
			CurrencyID: req.Currency,
		})
	}

	res, err := m.client.Create(ctx, preference.Request{
		Items:             items,
		Payer:             &preference.PayerRequest{Email: req.PayerEmail},
		ExternalReference: req.ExternalID,
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Failure: req.FailureURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if res == nil || res.ID == "" || res.InitPoint == "" {
		return nil, fmt.Errorf("%w: preference response without id or init point", ErrProvider)
	}

	return &Invoice{
		ID:     res.ID,
		URL:    res.InitPoint,
		Status: "PENDING",
	}, nil
}
