package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type Xendit struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

var _ Provider = (*Xendit)(nil)

func NewXendit(secretKey, baseURL string, client *http.Client) *Xendit {
	if client == nil {
		client = http.DefaultClient
	}
	return &Xendit{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    client,
	}
}

type xenditInvoiceRequest struct {
	ExternalID         string  `json:"external_id"`
	PayerEmail         string  `json:"payer_email"`
	Amount             float64 `json:"amount"`
	Description        string  `json:"description"`
	SuccessRedirectURL string  `json:"success_redirect_url"`
	FailureRedirectURL string  `json:"failure_redirect_url"`
	Currency           string  `json:"currency"`
}

type xenditInvoiceResponse struct {
	ID         string `json:"id"`
	InvoiceURL string `json:"invoice_url"`
	Status     string `json:"status"`

	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func (x *Xendit) CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error) {
	body, err := json.Marshal(xenditInvoiceRequest{
		ExternalID:         req.ExternalID,
		PayerEmail:         req.PayerEmail,
		Amount:             req.Amount,
		Description:        req.Description,
		SuccessRedirectURL: req.SuccessURL,
		FailureRedirectURL: req.FailureURL,
		Currency:           req.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode invoice: %v", ErrProvider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, x.baseURL+"/v2/invoices", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	httpReq.SetBasicAuth(x.secretKey, "")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := x.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrProvider, err)
	}

	var out xenditInvoiceResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := out.ErrorCode
		if msg == "" {
			msg = out.Message
		}
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("%w: %s", ErrProvider, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrProvider, decodeErr)
	}
	if out.ID == "" || out.InvoiceURL == "" {
		return nil, fmt.Errorf("%w: invoice response without id or url", ErrProvider)
	}

	return &Invoice{
		ID:     out.ID,
		URL:    out.InvoiceURL,
		Status: out.Status,
	}, nil
}
