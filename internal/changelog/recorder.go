package changelog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/shop-api/internal/dto"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionRestore Action = "restore"
)

type Entry struct {
	RefCollection string
	RefID         *string
	Action        Action
	User          string
	Diff          any
}

type Filter struct {
	RefCollection string
	RefID         string
	Action        string
	User          string

	Page dto.Page
}

type Store interface {
	Create(ctx context.Context, log *models.ChangeLog) error
	List(ctx context.Context, f Filter) ([]models.ChangeLog, int64, error)
}

// Recorder appends audit entries synchronously. It does not validate the
// diff and does not share a transaction with the entity write.
type Recorder struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Recorder {
	return &Recorder{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *Recorder) Record(ctx context.Context, e Entry) error {
	var diff datatypes.JSON
	if e.Diff != nil {
		b, err := json.Marshal(e.Diff)
		if err != nil {
			return fmt.Errorf("encode changelog diff: %w", err)
		}
		diff = datatypes.JSON(b)
	}

	log := models.ChangeLog{
		RefCollection: e.RefCollection,
		RefID:         e.RefID,
		Action:        string(e.Action),
		User:          e.User,
		Timestamp:     r.now(),
		Diff:          diff,
	}

	if err := r.store.Create(ctx, &log); err != nil {
		return fmt.Errorf("record changelog: %w", err)
	}
	return nil
}

func (r *Recorder) List(ctx context.Context, f Filter) ([]models.ChangeLog, int64, error) {
	return r.store.List(ctx, f)
}

// Ref is a convenience for the weak reference to a single record.
func Ref(id string) *string {
	return &id
}
