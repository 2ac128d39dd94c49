package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/domain/item"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

// DefaultFile is read when no path is given.
const DefaultFile = "seed-items.json"

// Actor is stamped on seeded rows as creator.
const Actor = "seed"

var ErrNotArray = errors.New("seed file must be a JSON array")

// Replacer is the slice of the item repository seeding needs.
type Replacer interface {
	ReplaceAll(ctx context.Context, items []models.Item) (int64, error)
}

var _ Replacer = (item.Repository)(nil)

type Result struct {
	File     string
	Deleted  int64
	Inserted int
}

// Load decodes a JSON array of items and fills the audit defaults.
func Load(r io.Reader) ([]models.Item, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		return nil, ErrNotArray
	}

	var items []models.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	for i := range items {
		it := &items[i]

		if strings.TrimSpace(it.Name) == "" {
			return nil, fmt.Errorf("item %d: name is required", i)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("item %d: price must be >= 0", i)
		}

		status := item.Status(it.Status)
		switch {
		case status == "":
			it.Status = string(item.StatusActive)
		case !status.Valid():
			return nil, fmt.Errorf("item %d: invalid status %q", i, it.Status)
		}

		it.ID = ""
		it.Version = 0
		it.DeletedAt = nil
		it.DeletedBy = nil
		if it.CreatedBy == nil {
			actor := Actor
			it.CreatedBy = &actor
		}
		it.UpdatedBy = it.CreatedBy
	}

	return items, nil
}

// LoadFile opens path, falling back to DefaultFile.
func LoadFile(path string) ([]models.Item, string, error) {
	if path == "" {
		path = DefaultFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, path, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	items, err := Load(f)
	return items, path, err
}

// Run replaces the whole items table with items and drops cached catalog
// pages.
func Run(ctx context.Context, repo Replacer, catalog cache.Catalog, items []models.Item) (Result, error) {
	deleted, err := repo.ReplaceAll(ctx, items)
	if err != nil {
		return Result{}, fmt.Errorf("replace items: %w", err)
	}

	if catalog != nil {
		catalog.Invalidate(ctx)
	}

	return Result{Deleted: deleted, Inserted: len(items)}, nil
}
