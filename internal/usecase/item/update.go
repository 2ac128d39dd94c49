package item

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/changelog"
	domain "github.com/BruksfildServices01/shop-api/internal/domain/item"
	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/middleware"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindRequiredString
	kindPrice
	kindBool
	kindStatus
)

type patchField struct {
	column string
	kind   fieldKind
}

// patchable lists the request fields an update may touch. Audit fields,
// ids and timestamps are owned by the repository.
var patchable = map[string]patchField{
	"name":        {"name", kindRequiredString},
	"imgSrc":      {"img_src", kindRequiredString},
	"price":       {"price", kindPrice},
	"description": {"description", kindString},
	"category":    {"category", kindString},
	"isNew":       {"is_new", kindBool},
	"gender":      {"gender", kindString},
	"ageGroup":    {"age_group", kindString},
	"status":      {"status", kindStatus},
}

// BuildPatch turns a decoded JSON object into column assignments. Unknown
// keys are ignored; known keys with the wrong type are rejected.
func BuildPatch(body map[string]any) (map[string]any, error) {
	set := make(map[string]any, len(body))

	for key, raw := range body {
		f, ok := patchable[key]
		if !ok {
			continue
		}

		switch f.kind {
		case kindString, kindRequiredString:
			s, ok := raw.(string)
			if !ok {
				return nil, httperr.ErrBusiness("invalid_" + f.column)
			}
			s = strings.TrimSpace(s)
			if f.kind == kindRequiredString && s == "" {
				return nil, httperr.ErrBusiness(f.column + "_required")
			}
			set[f.column] = s

		case kindPrice:
			n, ok := raw.(float64)
			if !ok || n < 0 {
				return nil, httperr.ErrBusiness("invalid_price")
			}
			set[f.column] = n

		case kindBool:
			b, ok := raw.(bool)
			if !ok {
				return nil, httperr.ErrBusiness("invalid_" + f.column)
			}
			set[f.column] = b

		case kindStatus:
			s, ok := raw.(string)
			if !ok || !domain.Status(s).Valid() {
				return nil, httperr.ErrBusiness("invalid_status")
			}
			set[f.column] = s
		}
	}

	return set, nil
}

// ======================================================
// INPUT
// ======================================================

type UpdateItemInput struct {
	ID string

	// Body is the decoded request object. A numeric "version" key makes
	// the update conditional on it.
	Body map[string]any
}

// ExpectedVersion reads the optional version guard from the body.
func (in UpdateItemInput) ExpectedVersion() (*int, error) {
	raw, ok := in.Body["version"]
	if !ok || raw == nil {
		return nil, nil
	}
	n, ok := raw.(float64)
	if !ok || n != float64(int(n)) {
		return nil, httperr.ErrBusiness("invalid_version")
	}
	v := int(n)
	return &v, nil
}

// ======================================================
// USE CASE
// ======================================================

type UpdateItem struct {
	repo domain.Repository
	afterWrite
}

func NewUpdateItem(
	repo domain.Repository,
	audit Recorder,
	catalog cache.Catalog,
	log logrus.FieldLogger,
) *UpdateItem {
	return &UpdateItem{
		repo:       repo,
		afterWrite: afterWrite{audit: audit, catalog: catalog, log: log},
	}
}

// Execute only touches live items. A stale version yields
// domain.ErrVersionConflict and leaves the row untouched.
func (uc *UpdateItem) Execute(
	ctx context.Context,
	actor middleware.Identity,
	in UpdateItemInput,
) (*models.Item, error) {

	expected, err := in.ExpectedVersion()
	if err != nil {
		return nil, err
	}

	set, err := BuildPatch(in.Body)
	if err != nil {
		return nil, err
	}
	set["updated_by"] = actorRef(actor)

	before, err := uc.repo.FindByID(ctx, in.ID, false)
	if err != nil {
		return nil, err
	}

	after, err := uc.repo.Update(ctx, in.ID, set, expected)
	if err != nil {
		return nil, err
	}

	if err := uc.done(ctx, actor, changelog.ActionUpdate, changelog.Ref(after.ID), map[string]any{
		"before": before,
		"after":  after,
	}); err != nil {
		return nil, err
	}

	return after, nil
}
