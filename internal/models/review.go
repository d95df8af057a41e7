package models

import (
	"time"
)

// Review is a customer review of a product. Verified reviews come from
// customers whose email or phone matches a past order containing the product.
type Review struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID     string    `json:"product_id" gorm:"index" validate:"required"`
	ReviewerName  string    `json:"reviewer_name" validate:"required"`
	ReviewerEmail string    `json:"reviewer_email" validate:"required,email"`
	ReviewerPhone string    `json:"reviewer_phone"`
	Rating        int       `json:"rating" validate:"required,min=1,max=5"`
	Title         string    `json:"title" validate:"required,max=120"`
	Text          string    `json:"text" validate:"required,max=2000"`
	Images        []string  `json:"images" gorm:"serializer:json"`
	Verified      bool      `json:"verified"`
	OrderID       string    `json:"order_id"`
	Date          time.Time `json:"date"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
