package item

import "github.com/BruksfildServices01/shop-api/internal/httperr"

type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	}
	return false
}

// ParseStatus accepts the empty string as the default status.
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return StatusActive, nil
	}
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.ErrBusiness("invalid_status")
	}
	return s, nil
}
