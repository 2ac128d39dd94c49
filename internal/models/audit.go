package models

import "time"

// Audit is embedded by entities under the soft-delete and versioning
// policy. A non-nil DeletedAt hides the row from default reads.
type Audit struct {
	CreatedBy *string    `gorm:"size:100;index" json:"createdBy"`
	UpdatedBy *string    `gorm:"size:100" json:"updatedBy"`
	DeletedAt *time.Time `gorm:"index" json:"deletedAt"`
	DeletedBy *string    `gorm:"size:100" json:"deletedBy"`
	Version   int        `gorm:"not null" json:"version"`
	Status    string     `gorm:"size:20;not null;index" json:"status"`
}

func (a Audit) IsDeleted() bool {
	return a.DeletedAt != nil
}
