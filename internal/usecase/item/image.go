package item

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/changelog"
	domain "github.com/BruksfildServices01/shop-api/internal/domain/item"
	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/imaging"
	"github.com/BruksfildServices01/shop-api/internal/middleware"
	"github.com/BruksfildServices01/shop-api/internal/models"
	"github.com/BruksfildServices01/shop-api/internal/storage"
)

var ErrImagesDisabled = errors.New("images_disabled")

type UploadImageInput struct {
	ID              string
	File            io.Reader
	ExpectedVersion *int
}

type UploadImage struct {
	repo     domain.Repository
	uploader storage.Uploader
	maxWidth int
	afterWrite
}

// NewUploadImage accepts a nil uploader; Execute then reports
// ErrImagesDisabled.
func NewUploadImage(
	repo domain.Repository,
	uploader storage.Uploader,
	maxWidth int,
	audit Recorder,
	catalog cache.Catalog,
	log logrus.FieldLogger,
) *UploadImage {
	return &UploadImage{
		repo:       repo,
		uploader:   uploader,
		maxWidth:   maxWidth,
		afterWrite: afterWrite{audit: audit, catalog: catalog, log: log},
	}
}

func (uc *UploadImage) Execute(
	ctx context.Context,
	actor middleware.Identity,
	in UploadImageInput,
) (*models.Item, error) {

	if uc.uploader == nil {
		return nil, ErrImagesDisabled
	}

	before, err := uc.repo.FindByID(ctx, in.ID, false)
	if err != nil {
		return nil, err
	}

	data, err := imaging.ToWebP(in.File, uc.maxWidth, imaging.DefaultQuality)
	if errors.Is(err, imaging.ErrInvalidImage) {
		return nil, httperr.ErrBusiness("invalid_image")
	}
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("items/%s/%s.webp", in.ID, uuid.NewString())
	url, err := uc.uploader.Upload(ctx, key, imaging.ContentType, data)
	if err != nil {
		return nil, err
	}

	after, err := uc.repo.Update(ctx, in.ID, map[string]any{
		"img_src":    url,
		"updated_by": actorRef(actor),
	}, in.ExpectedVersion)
	if err != nil {
		return nil, err
	}

	if err := uc.done(ctx, actor, changelog.ActionUpdate, changelog.Ref(in.ID), map[string]any{
		"before": map[string]any{"imgSrc": before.ImgSrc},
		"after":  map[string]any{"imgSrc": after.ImgSrc},
	}); err != nil {
		return nil, err
	}

	return after, nil
}
