package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/shop-api/internal/changelog"
	"github.com/BruksfildServices01/shop-api/internal/domain"
	"github.com/BruksfildServices01/shop-api/internal/domain/order"
	"github.com/BruksfildServices01/shop-api/internal/dto"
	"github.com/BruksfildServices01/shop-api/internal/models"
	"github.com/BruksfildServices01/shop-api/internal/testutil"
)

func newOrder(username string, createdAt time.Time) *models.Order {
	return &models.Order{
		Username:  username,
		Email:     username + "@example.com",
		Address:   "Jl. Merdeka 1",
		Whatsapp:  "0812",
		Items:     []models.OrderLine{{Name: "shirt", Price: 10, Qty: 2}, {Name: "hat", Price: 5, Qty: 1}},
		Total:     25,
		Status:    string(order.StatusPending),
		CreatedAt: createdAt,
	}
}

func TestOrderCreateAndAttachPayment(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderGormRepository(testutil.NewDB(t))

	o := newOrder("ann", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, o))
	require.NotEmpty(t, o.ID)

	updated, err := repo.AttachPayment(ctx, o.ID, "https://pay.example.com/inv/1", "inv_1")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/inv/1", updated.PaymentURL)
	assert.Equal(t, "inv_1", updated.InvoiceID)
	assert.Equal(t, string(order.StatusPending), updated.Status)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, "shirt", updated.Items[0].Name)
	assert.Equal(t, 2, updated.Items[0].Qty)

	_, err = repo.AttachPayment(ctx, "missing", "u", "i")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderGormRepository(testutil.NewDB(t))

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	early := newOrder("ann", day.Add(-time.Hour))
	inside := newOrder("bob", day.Add(5*time.Hour))
	late := newOrder("carl", day.Add(24*time.Hour))
	late.Address = "Bobby Street"
	for _, o := range []*models.Order{early, inside, late} {
		require.NoError(t, repo.Create(ctx, o))
	}

	page := dto.NewPage(1, 50)

	from, to := day, day.Add(24*time.Hour)
	orders, total, err := repo.List(ctx, order.ListQuery{From: &from, To: &to, Page: page})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, inside.ID, orders[0].ID)
	assert.Len(t, orders[0].Items, 2)

	// term spans several columns and wins over username
	orders, total, err = repo.List(ctx, order.ListQuery{Term: "bob", Username: "ann", Page: page})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, orders, 2)

	orders, _, err = repo.List(ctx, order.ListQuery{Username: "ann", Page: page})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, early.ID, orders[0].ID)

	orders, _, err = repo.List(ctx, order.ListQuery{
		Sort: dto.ParseSort("createdAt:asc", order.SortColumns, order.DefaultSortColumn),
		Page: page,
	})
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, []string{early.ID, inside.ID, late.ID}, []string{orders[0].ID, orders[1].ID, orders[2].ID})

	_, total, err = repo.List(ctx, order.ListQuery{Status: "PAID", Page: page})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUserLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserGormRepository(testutil.NewDB(t))

	u := &models.User{Username: "ann", Email: strPtr("ann@example.com"), PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, models.RoleUser, u.Role)

	byName, err := repo.FindByLogin(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := repo.FindByLogin(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = repo.FindByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	taken, err := repo.Exists(ctx, "other", "ann@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.Exists(ctx, "other", "")
	require.NoError(t, err)
	assert.False(t, taken)

	promoted, err := repo.SetCredentials(ctx, u.ID, "y", models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())
	assert.Equal(t, "y", promoted.PasswordHash)
}

func TestChangeLogListFilters(t *testing.T) {
	ctx := context.Background()
	rec := changelog.New(NewChangeLogGormRepository(testutil.NewDB(t)))

	require.NoError(t, rec.Record(ctx, changelog.Entry{
		RefCollection: models.CollectionItems,
		RefID:         changelog.Ref("a"),
		Action:        changelog.ActionCreate,
		User:          "ann",
		Diff:          map[string]any{"after": map[string]any{"name": "x"}},
	}))
	require.NoError(t, rec.Record(ctx, changelog.Entry{
		RefCollection: models.CollectionItems,
		Action:        changelog.ActionUpdate,
		User:          "bob",
		Diff:          map[string]any{"bulk": true},
	}))

	logs, total, err := rec.List(ctx, changelog.Filter{User: "bob", Page: dto.NewPage(1, 20)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, logs, 1)
	assert.Nil(t, logs[0].RefID)
	assert.JSONEq(t, `{"bulk":true}`, string(logs[0].Diff))

	logs, total, err = rec.List(ctx, changelog.Filter{RefID: "a", Page: dto.NewPage(1, 20)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "create", logs[0].Action)

	_, total, err = rec.List(ctx, changelog.Filter{RefCollection: models.CollectionItems, Page: dto.NewPage(1, 20)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
