package dto

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200

	// MaxPage keeps Offset within int for any limit.
	MaxPage = math.MaxInt/MaxLimit + 1
)

type Page struct {
	Number int
	Limit  int
}

// NewPage coerces page and limit to at least 1 and caps them at MaxPage
// and MaxLimit.
func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: page, Limit: limit}
}

// ParsePage reads raw query values; unparsable input takes the defaults.
func ParsePage(rawPage, rawLimit string) Page {
	page, err := strconv.Atoi(strings.TrimSpace(rawPage))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(strings.TrimSpace(rawLimit))
	if err != nil {
		limit = DefaultLimit
	}
	return NewPage(page, limit)
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

func (p Page) Pages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

type Sort struct {
	Column string
	Desc   bool
}

// ParseSort reads "field:direction". Unknown or missing fields fall back to
// def; any direction other than "asc" sorts descending.
func ParseSort(raw string, columns map[string]string, def string) Sort {
	field, dir, _ := strings.Cut(strings.TrimSpace(raw), ":")

	col, ok := columns[field]
	if !ok {
		col = def
	}

	return Sort{Column: col, Desc: strings.ToLower(dir) != "asc"}
}

func (s Sort) Clause() string {
	if s.Desc {
		return s.Column + " DESC"
	}
	return s.Column + " ASC"
}
