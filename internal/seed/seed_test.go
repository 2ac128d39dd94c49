package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/domain/item"
	"github.com/BruksfildServices01/shop-api/internal/dto"
	"github.com/BruksfildServices01/shop-api/internal/infra/repository"
	"github.com/BruksfildServices01/shop-api/internal/testutil"
)

const sample = `[
  {"name": "Linen Shirt", "imgSrc": "/img/linen.webp", "price": 189000, "category": "shirts", "isNew": true, "gender": "men"},
  {"name": "Kids Cap", "imgSrc": "/img/cap.webp", "price": 45000, "category": "hats", "ageGroup": "kids", "status": "draft", "version": 9, "_id": "64f0"}
]`

type countingCache struct {
	cache.Nop
	invalidations int
}

func (c *countingCache) Invalidate(context.Context) { c.invalidations++ }

func TestLoadFillsDefaults(t *testing.T) {
	items, err := Load(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Linen Shirt", items[0].Name)
	assert.Equal(t, 189000.0, items[0].Price)
	assert.True(t, items[0].IsNew)
	assert.Equal(t, string(item.StatusActive), items[0].Status)
	require.NotNil(t, items[0].CreatedBy)
	assert.Equal(t, Actor, *items[0].CreatedBy)

	assert.Equal(t, string(item.StatusDraft), items[1].Status)
	assert.Zero(t, items[1].Version)
	assert.Empty(t, items[1].ID)
}

func TestLoadRejectsBadInput(t *testing.T) {
	_, err := Load(strings.NewReader(`{"name": "x"}`))
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = Load(strings.NewReader(`[{"name": "x"`))
	assert.Error(t, err)

	_, err = Load(strings.NewReader(`[{"imgSrc": "/a"}]`))
	assert.ErrorContains(t, err, "item 0")

	_, err = Load(strings.NewReader(`[{"name": "x", "status": "gone"}]`))
	assert.ErrorContains(t, err, "invalid status")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	items, used, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Len(t, items, 2)

	_, _, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "open seed file")
}

func TestRunReplacesItems(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewItemGormRepository(testutil.NewDB(t))
	spy := &countingCache{}

	items, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	res, err := Run(ctx, repo, spy, items)
	require.NoError(t, err)
	assert.Zero(t, res.Deleted)
	assert.Equal(t, 2, res.Inserted)

	again, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	res, err = Run(ctx, repo, spy, again[:1])
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Deleted)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 2, spy.invalidations)

	got, total, err := repo.List(ctx, item.ListQuery{IncludeDeleted: true, Page: dto.NewPage(1, 10)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Linen Shirt", got[0].Name)
}
