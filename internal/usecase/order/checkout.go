package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	apperr "github.com/BruksfildServices01/shop-api/internal/domain"
	domain "github.com/BruksfildServices01/shop-api/internal/domain/order"
	"github.com/BruksfildServices01/shop-api/internal/middleware"
	"github.com/BruksfildServices01/shop-api/internal/models"
	"github.com/BruksfildServices01/shop-api/internal/payment"
)

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CheckoutInput struct {
	Address  string
	Whatsapp string
	Items    []domain.Line
}

type CheckoutResult struct {
	OrderID    string `json:"orderId"`
	PaymentURL string `json:"paymentUrl"`
	InvoiceID  string `json:"invoiceId"`
	Status     string `json:"status"`
}

type CheckoutSettings struct {
	FrontendURL string
	Currency    string
}

// ======================================================
// USE CASE
// ======================================================

type Checkout struct {
	orders   domain.Repository
	users    UserFinder
	provider payment.Provider
	settings CheckoutSettings
	log      logrus.FieldLogger
}

func NewCheckout(
	orders domain.Repository,
	users UserFinder,
	provider payment.Provider,
	settings CheckoutSettings,
	log logrus.FieldLogger,
) *Checkout {
	return &Checkout{
		orders:   orders,
		users:    users,
		provider: provider,
		settings: settings,
		log:      log,
	}
}

// Execute persists a PENDING order and asks the provider for an invoice.
// A provider failure leaves the order PENDING without a payment URL.
func (uc *Checkout) Execute(
	ctx context.Context,
	buyer middleware.Identity,
	in CheckoutInput,
) (*CheckoutResult, error) {

	// --------------------------------------------------
	// 1. Cart
	// --------------------------------------------------
	total, err := domain.ValidateCart(in.Items)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Order
	// --------------------------------------------------
	email, err := uc.payerEmail(ctx, buyer)
	if err != nil {
		return nil, err
	}

	userID := buyer.UserID
	o := &models.Order{
		UserID:   &userID,
		Username: buyer.Username,
		Email:    email,
		Address:  strings.TrimSpace(in.Address),
		Whatsapp: strings.TrimSpace(in.Whatsapp),
		Items:    domain.Snapshot(in.Items),
		Total:    total,
		Status:   string(domain.InitialStatus()),
	}

	if err := uc.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Invoice
	// --------------------------------------------------
	lines := make([]payment.Line, 0, len(in.Items))
	for _, l := range in.Items {
		lines = append(lines, payment.Line{Name: l.Name, Price: l.Price, Qty: l.Qty})
	}

	invoice, err := uc.provider.CreateInvoice(ctx, payment.InvoiceRequest{
		ExternalID:  "order-" + o.ID,
		Amount:      total,
		Currency:    uc.settings.Currency,
		PayerEmail:  email,
		Description: fmt.Sprintf("Order by %s", buyer.Username),
		SuccessURL:  uc.settings.FrontendURL + "/success",
		FailureURL:  uc.settings.FrontendURL + "/failed",
		Lines:       lines,
	})
	if err != nil {
		uc.log.WithError(err).WithField("order_id", o.ID).Error("create invoice failed")
		return nil, err
	}

	// --------------------------------------------------
	// 4. Payment reference
	// --------------------------------------------------
	if _, err := uc.orders.AttachPayment(ctx, o.ID, invoice.URL, invoice.ID); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		OrderID:    o.ID,
		PaymentURL: invoice.URL,
		InvoiceID:  invoice.ID,
		Status:     invoice.Status,
	}, nil
}

// payerEmail prefers the stored address. An account without one, or one
// removed after the token was issued, pays as <username>@example.com.
func (uc *Checkout) payerEmail(ctx context.Context, buyer middleware.Identity) (string, error) {
	fallback := buyer.Username + "@example.com"

	u, err := uc.users.FindByID(ctx, buyer.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return "", err
	}
	if email := u.EmailOrEmpty(); email != "" {
		return email, nil
	}
	return fallback, nil
}
