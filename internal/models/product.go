package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductColor is a selectable colour variant of a saree.
type ProductColor struct {
	Name string `json:"name" validate:"required"`
	Hex  string `json:"hex" validate:"omitempty,hexcolor"`
}

// Product represents a saree in the catalogue.
type Product struct {
	ID           string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string          `json:"name" validate:"required,min=3,max=100"`
	Description  string          `json:"description" validate:"omitempty,max=1000"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2)" validate:"required"`
	Image        string          `json:"image"`
	Images       []string        `json:"images" gorm:"serializer:json"`
	Category     string          `json:"category" validate:"required,oneof=cotton silk party-wear designer"`
	Colors       []ProductColor  `json:"colors" gorm:"serializer:json" validate:"dive"`
	Stock        int             `json:"stock" validate:"gte=0"`
	IsBestseller bool            `json:"is_bestseller"`
	CreatedAt    time.Time       `json:"-"`
	UpdatedAt    time.Time       `json:"-"`
}

// MatchesCategory reports whether the product belongs to the given category.
// An empty category or "all" matches everything.
func (p *Product) MatchesCategory(category string) bool {
	if category == "" || category == "all" {
		return true
	}
	return p.Category == category
}

// MatchesQuery reports whether the product name or description contains the
// query, case-insensitively.
func (p *Product) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}
