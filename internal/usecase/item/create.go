package item

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/changelog"
	domain "github.com/BruksfildServices01/shop-api/internal/domain/item"
	"github.com/BruksfildServices01/shop-api/internal/middleware"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// CreateItemInput arrives validated by the request binding: name and
// imgSrc are non-blank, price is present and not negative.
type CreateItemInput struct {
	Name        string
	ImgSrc      string
	Price       float64
	Description string
	Category    string
	IsNew       bool
	Gender      string
	AgeGroup    string
	Status      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateItem struct {
	repo domain.Repository
	afterWrite
}

func NewCreateItem(
	repo domain.Repository,
	audit Recorder,
	catalog cache.Catalog,
	log logrus.FieldLogger,
) *CreateItem {
	return &CreateItem{
		repo:       repo,
		afterWrite: afterWrite{audit: audit, catalog: catalog, log: log},
	}
}

func (uc *CreateItem) Execute(
	ctx context.Context,
	actor middleware.Identity,
	in CreateItemInput,
) (*models.Item, error) {

	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	it := &models.Item{
		Name:        strings.TrimSpace(in.Name),
		ImgSrc:      strings.TrimSpace(in.ImgSrc),
		Price:       in.Price,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		IsNew:       in.IsNew,
		Gender:      in.Gender,
		AgeGroup:    in.AgeGroup,
		Audit: models.Audit{
			CreatedBy: actorRef(actor),
			UpdatedBy: actorRef(actor),
			Status:    string(status),
		},
	}

	if err := uc.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	if err := uc.done(ctx, actor, changelog.ActionCreate, changelog.Ref(it.ID), map[string]any{
		"after": it,
	}); err != nil {
		return nil, err
	}

	return it, nil
}
