package order

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

type Line struct {
	Name  string
	Price float64
	Qty   int
}

// Total is the sum of price × qty, computed in decimal to keep cents exact.
func Total(lines []Line) float64 {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	f, _ := sum.Float64()
	return f
}

// ValidateCart rejects carts that must never reach the payment provider.
// Each line needs a positive quantity and a non-negative price, and the
// cart as a whole must cost something.
func ValidateCart(lines []Line) (float64, error) {
	if len(lines) == 0 {
		return 0, httperr.ErrBusiness("empty_items")
	}
	for _, l := range lines {
		if l.Qty < 1 {
			return 0, httperr.ErrBusiness("invalid_qty")
		}
		if l.Price < 0 {
			return 0, httperr.ErrBusiness("invalid_price")
		}
	}

	total := Total(lines)
	if total <= 0 {
		return 0, httperr.ErrBusiness("invalid_total")
	}
	return total, nil
}

func Snapshot(lines []Line) []models.OrderLine {
	out := make([]models.OrderLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, models.OrderLine{
			Name:  l.Name,
			Price: l.Price,
			Qty:   l.Qty,
		})
	}
	return out
}
