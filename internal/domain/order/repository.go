package order

import (
	"context"

	"github.com/BruksfildServices01/shop-api/internal/models"
)

type Repository interface {
	Create(
		ctx context.Context,
		o *models.Order,
	) error

	FindByID(
		ctx context.Context,
		id string,
	) (*models.Order, error)

	AttachPayment(
		ctx context.Context,
		id string,
		paymentURL string,
		invoiceID string,
	) (*models.Order, error)

	List(
		ctx context.Context,
		q ListQuery,
	) ([]models.Order, int64, error)
}
