package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const CollectionOrders = "orders"

type Order struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	UserID   *string `gorm:"type:varchar(36);index" json:"user"`
	Username string  `gorm:"size:100;index" json:"username"`
	Email    string  `gorm:"size:200" json:"email"`
	Address  string  `gorm:"type:text" json:"address"`
	Whatsapp string  `gorm:"size:40" json:"whatsapp"`

	Items []OrderLine `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	Total float64     `gorm:"not null" json:"total"`

	Status     string `gorm:"size:20;not null;index" json:"status"`
	PaymentURL string `gorm:"size:500" json:"paymentUrl"`
	InvoiceID  string `gorm:"size:100" json:"invoiceId"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderLine is a price snapshot taken at checkout, not a link to Item.
type OrderLine struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	OrderID string `gorm:"type:varchar(36);not null;index" json:"-"`

	Name  string  `gorm:"size:200" json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
