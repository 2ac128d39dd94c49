package item

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/changelog"
	"github.com/BruksfildServices01/shop-api/internal/domain"
	itemdomain "github.com/BruksfildServices01/shop-api/internal/domain/item"
	"github.com/BruksfildServices01/shop-api/internal/dto"
	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/infra/repository"
	"github.com/BruksfildServices01/shop-api/internal/logging"
	"github.com/BruksfildServices01/shop-api/internal/middleware"
	"github.com/BruksfildServices01/shop-api/internal/models"
	"github.com/BruksfildServices01/shop-api/internal/testutil"
)

var admin = middleware.Identity{UserID: "u1", Username: "root", Role: models.RoleAdmin}

type spyCache struct {
	cache.Nop
	invalidations int
	lists         map[string][]models.Item
}

func (s *spyCache) Invalidate(context.Context) {
	s.invalidations++
	s.lists = nil
}

func (s *spyCache) GetList(_ context.Context, category string) ([]models.Item, bool) {
	items, ok := s.lists[category]
	return items, ok
}

func (s *spyCache) Snapshot(context.Context) (int64, bool) { return 0, true }

func (s *spyCache) SetList(_ context.Context, _ int64, category string, items []models.Item) {
	if s.lists == nil {
		s.lists = map[string][]models.Item{}
	}
	s.lists[category] = items
}

type fixture struct {
	repo     *repository.ItemGormRepository
	recorder *changelog.Recorder
	cache    *spyCache
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	return &fixture{
		repo:     repository.NewItemGormRepository(db),
		recorder: changelog.New(repository.NewChangeLogGormRepository(db)),
		cache:    &spyCache{},
	}
}

func (f *fixture) logs(t *testing.T) []models.ChangeLog {
	t.Helper()
	logs, _, err := f.recorder.List(context.Background(), changelog.Filter{Page: dto.NewPage(1, 100)})
	require.NoError(t, err)
	return logs
}

func (f *fixture) create(t *testing.T, name string) *models.Item {
	t.Helper()
	it, err := NewCreateItem(f.repo, f.recorder, f.cache, logging.Discard()).Execute(
		context.Background(), admin,
		CreateItemInput{Name: name, ImgSrc: "/img/" + name, Price: 10, Category: "shirts"},
	)
	require.NoError(t, err)
	return it
}

func TestCreateItem(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateItem(f.repo, f.recorder, f.cache, logging.Discard())

	it := f.create(t, "shirt")
	assert.Equal(t, string(itemdomain.StatusActive), it.Status)
	assert.Equal(t, 0, it.Version)
	assert.Equal(t, "root", *it.CreatedBy)

	logs := f.logs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, string(changelog.ActionCreate), logs[0].Action)
	assert.Equal(t, "root", logs[0].User)
	assert.Equal(t, it.ID, *logs[0].RefID)
	assert.Equal(t, 1, f.cache.invalidations)

	_, err := uc.Execute(context.Background(), admin, CreateItemInput{Name: "x", ImgSrc: "y", Status: "gone"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	trimmed, err := uc.Execute(context.Background(), admin, CreateItemInput{Name: " cap ", ImgSrc: " /img/cap ", Category: " hats "})
	require.NoError(t, err)
	assert.Equal(t, "cap", trimmed.Name)
	assert.Equal(t, "/img/cap", trimmed.ImgSrc)
	assert.Equal(t, "hats", trimmed.Category)
	assert.Zero(t, trimmed.Price)

	assert.Len(t, f.logs(t), 2)
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewUpdateItem(f.repo, f.recorder, f.cache, logging.Discard())

	it := f.create(t, "shirt")

	updated, err := uc.Execute(ctx, admin, UpdateItemInput{ID: it.ID, Body: map[string]any{
		"name":      "tee",
		"version":   0.0,
		"createdBy": "mallory",
		"price":     12.5,
	}})
	require.NoError(t, err)
	assert.Equal(t, "tee", updated.Name)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, 1, updated.Version)
	assert.Equal(t, "root", *updated.CreatedBy)

	_, err = uc.Execute(ctx, admin, UpdateItemInput{ID: it.ID, Body: map[string]any{"name": "stale", "version": 0.0}})
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	_, err = uc.Execute(ctx, admin, UpdateItemInput{ID: "missing", Body: map[string]any{"name": "x"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Execute(ctx, admin, UpdateItemInput{ID: it.ID, Body: map[string]any{"price": "free"}})
	assert.True(t, httperr.IsBusiness(err, "invalid_price"))

	logs := f.logs(t)
	require.Len(t, logs, 2)
	assert.Equal(t, string(changelog.ActionUpdate), logs[0].Action)
	assert.Contains(t, string(logs[0].Diff), `"before"`)
	assert.Contains(t, string(logs[0].Diff), `"after"`)
}

func TestUpdateItemSkipsDeleted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	it := f.create(t, "shirt")

	_, err := NewDeleteItem(f.repo, f.recorder, f.cache, logging.Discard()).Execute(ctx, admin, it.ID, false)
	require.NoError(t, err)

	_, err = NewUpdateItem(f.repo, f.recorder, f.cache, logging.Discard()).Execute(ctx, admin, UpdateItemInput{
		ID:   it.ID,
		Body: map[string]any{"name": "ghost"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRestoreLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	del := NewDeleteItem(f.repo, f.recorder, f.cache, logging.Discard())
	restore := NewRestoreItem(f.repo, f.recorder, f.cache, logging.Discard())

	it := f.create(t, "shirt")

	deleted, err := del.Execute(ctx, admin, it.ID, false)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted())

	restored, err := restore.Execute(ctx, admin, it.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted())

	_, err = del.Execute(ctx, admin, it.ID, true)
	require.NoError(t, err)

	_, err = restore.Execute(ctx, admin, it.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	logs := f.logs(t)
	require.Len(t, logs, 4)

	actions := map[string]int{}
	for _, l := range logs {
		actions[l.Action]++
		assert.Equal(t, "root", l.User)
	}
	assert.Equal(t, map[string]int{"create": 1, "delete": 2, "restore": 1}, actions)
}

func TestBulkItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewBulkItems(f.repo, f.recorder, f.cache, logging.Discard())

	a, b, c := f.create(t, "a"), f.create(t, "b"), f.create(t, "c")
	before := len(f.logs(t))

	res, err := uc.Execute(ctx, admin, BulkInput{
		IDs:     []string{a.ID, "missing", c.ID},
		Action:  itemdomain.BulkStatus,
		Payload: map[string]any{"status": "archived"},
	})
	require.NoError(t, err)
	assert.Equal(t, itemdomain.BulkResult{"updated": 2}, res)

	res, err = uc.Execute(ctx, admin, BulkInput{IDs: []string{a.ID, b.ID, "missing"}, Action: itemdomain.BulkDelete})
	require.NoError(t, err)
	assert.Equal(t, itemdomain.BulkResult{"deleted": 2}, res)

	res, err = uc.Execute(ctx, admin, BulkInput{IDs: []string{a.ID, b.ID, c.ID}, Action: itemdomain.BulkRestore})
	require.NoError(t, err)
	assert.Equal(t, itemdomain.BulkResult{"restored": 2}, res)

	logs := f.logs(t)
	assert.Len(t, logs, before+3)
	assert.Nil(t, logs[0].RefID)
	assert.Contains(t, string(logs[0].Diff), `"bulk":true`)

	_, err = uc.Execute(ctx, admin, BulkInput{Action: itemdomain.BulkDelete})
	assert.True(t, httperr.IsBusiness(err, "ids_required"))

	_, err = uc.Execute(ctx, admin, BulkInput{IDs: []string{a.ID}, Action: "explode"})
	assert.True(t, httperr.IsBusiness(err, "invalid_action"))

	_, err = uc.Execute(ctx, admin, BulkInput{IDs: []string{a.ID}, Action: itemdomain.BulkStatus, Payload: map[string]any{"status": "gone"}})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	assert.Len(t, f.logs(t), before+3)
}

func TestCatalogUsesCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	catalog := NewCatalog(f.repo, f.cache)

	f.create(t, "a")

	items, err := catalog.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Contains(t, f.cache.lists, "")

	f.create(t, "b")

	items, err = catalog.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, items, 2, "admin writes invalidate the cached list")

	hats, err := catalog.List(ctx, "hats")
	require.NoError(t, err)
	assert.Empty(t, hats)
	assert.NotNil(t, hats)

	_, err = catalog.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// hookRepo runs a callback once, right after the wrapped read returns.
// It stands in for a concurrent admin request landing between two steps
// of a use case.
type hookRepo struct {
	itemdomain.Repository
	afterList func()
	afterFind func()
}

func (r *hookRepo) ListCatalog(ctx context.Context, category string) ([]models.Item, error) {
	items, err := r.Repository.ListCatalog(ctx, category)
	if fn := r.afterList; fn != nil {
		r.afterList = nil
		fn()
	}
	return items, err
}

func (r *hookRepo) FindByID(ctx context.Context, id string, includeDeleted bool) (*models.Item, error) {
	it, err := r.Repository.FindByID(ctx, id, includeDeleted)
	if fn := r.afterFind; fn != nil {
		r.afterFind = nil
		fn()
	}
	return it, err
}

func newRedisCatalog(t *testing.T) cache.Catalog {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedis(client, time.Minute, logging.Discard())
}

func TestCatalogDropsRowsReadBeforeInvalidate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	shared := newRedisCatalog(t)
	del := NewDeleteItem(f.repo, f.recorder, shared, logging.Discard())

	it := f.create(t, "shirt")
	hooked := &hookRepo{Repository: f.repo}
	hooked.afterList = func() {
		_, err := del.Execute(ctx, admin, it.ID, false)
		require.NoError(t, err)
	}
	catalog := NewCatalog(hooked, shared)

	items, err := catalog.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = catalog.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items, "rows read before the delete must not be served afterwards")
}

func TestCatalogItemDropsRowReadBeforeInvalidate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	shared := newRedisCatalog(t)
	del := NewDeleteItem(f.repo, f.recorder, shared, logging.Discard())

	it := f.create(t, "shirt")
	hooked := &hookRepo{Repository: f.repo}
	hooked.afterFind = func() {
		_, err := del.Execute(ctx, admin, it.ID, false)
		require.NoError(t, err)
	}
	catalog := NewCatalog(hooked, shared)

	got, err := catalog.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "shirt", got.Name)

	_, err = catalog.Get(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateItemLosesRaceWithDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	it := f.create(t, "shirt")

	hooked := &hookRepo{Repository: f.repo}
	hooked.afterFind = func() {
		_, err := f.repo.SoftDelete(ctx, it.ID, "other")
		require.NoError(t, err)
	}

	_, err := NewUpdateItem(hooked, f.recorder, f.cache, logging.Discard()).Execute(ctx, admin, UpdateItemInput{
		ID:   it.ID,
		Body: map[string]any{"name": "ghost"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.repo.FindByID(ctx, it.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "shirt", got.Name)
	assert.True(t, got.IsDeleted())

	for _, l := range f.logs(t) {
		assert.NotEqual(t, string(changelog.ActionUpdate), l.Action)
	}
}

func TestUploadImageLosesRaceWithDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	it := f.create(t, "shirt")

	hooked := &hookRepo{Repository: f.repo}
	hooked.afterFind = func() {
		_, err := f.repo.SoftDelete(ctx, it.ID, "other")
		require.NoError(t, err)
	}

	uc := NewUploadImage(hooked, &fakeUploader{}, 100, f.recorder, f.cache, logging.Discard())
	_, err := uc.Execute(ctx, admin, UploadImageInput{ID: it.ID, File: pngBytes(t)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.repo.FindByID(ctx, it.ID, true)
	require.NoError(t, err)
	assert.Equal(t, it.ImgSrc, got.ImgSrc)
	assert.Equal(t, it.Version, got.Version)
}

type failingRecorder struct{ err error }

func (r failingRecorder) Record(context.Context, changelog.Entry) error { return r.err }

func TestChangelogFailureStillInvalidates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	it := f.create(t, "shirt")
	before := f.cache.invalidations

	down := errors.New("changelog down")
	uc := NewUpdateItem(f.repo, failingRecorder{err: down}, f.cache, logging.Discard())

	_, err := uc.Execute(ctx, admin, UpdateItemInput{ID: it.ID, Body: map[string]any{"name": "tee"}})
	assert.ErrorIs(t, err, down)

	got, err := f.repo.FindByID(ctx, it.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "tee", got.Name)
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, before+1, f.cache.invalidations)
}

type fakeUploader struct {
	key string
	err error
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	f.key = key
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + key, nil
}

func pngBytes(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 10))))
	return &buf
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	up := &fakeUploader{}
	uc := NewUploadImage(f.repo, up, 100, f.recorder, f.cache, logging.Discard())

	it := f.create(t, "shirt")

	updated, err := uc.Execute(ctx, admin, UploadImageInput{ID: it.ID, File: pngBytes(t)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.key, "items/"+it.ID+"/"))
	assert.True(t, strings.HasSuffix(up.key, ".webp"))
	assert.Equal(t, "https://cdn.example.com/"+up.key, updated.ImgSrc)
	assert.Equal(t, 1, updated.Version)

	_, err = uc.Execute(ctx, admin, UploadImageInput{ID: it.ID, File: strings.NewReader("nope")})
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))

	stale := 0
	_, err = uc.Execute(ctx, admin, UploadImageInput{ID: it.ID, File: pngBytes(t), ExpectedVersion: &stale})
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	up.err = errors.New("bucket gone")
	_, err = uc.Execute(ctx, admin, UploadImageInput{ID: it.ID, File: pngBytes(t)})
	assert.ErrorContains(t, err, "bucket gone")

	disabled := NewUploadImage(f.repo, nil, 100, f.recorder, f.cache, logging.Discard())
	_, err = disabled.Execute(ctx, admin, UploadImageInput{ID: it.ID, File: pngBytes(t)})
	assert.ErrorIs(t, err, ErrImagesDisabled)
}

func TestBuildPatch(t *testing.T) {
	set, err := BuildPatch(map[string]any{
		"name":      " Tee ",
		"isNew":     true,
		"ageGroup":  "kids",
		"status":    "draft",
		"deletedAt": nil,
		"version":   3.0,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":      "Tee",
		"is_new":    true,
		"age_group": "kids",
		"status":    "draft",
	}, set)

	_, err = BuildPatch(map[string]any{"name": ""})
	assert.True(t, httperr.IsBusiness(err, "name_required"))

	_, err = BuildPatch(map[string]any{"isNew": "yes"})
	assert.True(t, httperr.IsBusiness(err, "invalid_is_new"))

	_, err = BuildPatch(map[string]any{"status": "gone"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestExpectedVersion(t *testing.T) {
	v, err := UpdateItemInput{Body: map[string]any{"version": 4.0}}.ExpectedVersion()
	require.NoError(t, err)
	assert.Equal(t, 4, *v)

	v, err = UpdateItemInput{Body: map[string]any{}}.ExpectedVersion()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = UpdateItemInput{Body: map[string]any{"version": "4"}}.ExpectedVersion()
	assert.True(t, httperr.IsBusiness(err, "invalid_version"))
}
