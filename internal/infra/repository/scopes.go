package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

func likeLower(col, term string) Scope {
	pattern := "%" + strings.ToLower(term) + "%"
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("LOWER("+col+") LIKE ?", pattern)
	}
}

func equals(col string, v any) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(col+" = ?", v)
	}
}

func idIn(ids []string) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id IN ?", ids)
	}
}

func createdFrom(t time.Time) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("created_at >= ?", t)
	}
}

func createdBefore(t time.Time) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("created_at < ?", t)
	}
}
