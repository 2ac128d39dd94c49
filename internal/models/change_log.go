package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChangeLog is append-only. RefID is a weak reference: the target row may
// be hard-deleted while its entries remain.
type ChangeLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RefCollection string  `gorm:"size:50;index" json:"refCollection"`
	RefID         *string `gorm:"type:varchar(36);index" json:"refId"`
	Action        string  `gorm:"size:20;not null;index" json:"action"`
	User          string  `gorm:"column:actor;size:100;index" json:"user"`

	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Diff      datatypes.JSON `json:"diff"`
}
