package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const CollectionItems = "items"

type Item struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	Name        string  `gorm:"size:200;not null" json:"name"`
	ImgSrc      string  `gorm:"size:500;not null" json:"imgSrc"`
	Price       float64 `gorm:"not null" json:"price"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"size:100;index" json:"category"`
	IsNew       bool    `json:"isNew"`
	Gender      string  `gorm:"size:30" json:"gender"`
	AgeGroup    string  `gorm:"size:30" json:"ageGroup"`

	Audit

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
