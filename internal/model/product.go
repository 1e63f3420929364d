package model

import (
	"github.com/shopspring/decimal"

	"ecommerce-service/internal/apperr"
)

// Product is a catalog row. Deletion is logical (IsDeleted flag) so the
// unique name index and order item references stay valid for removed
// rows. Version is an opaque token replaced on every successful write;
// writes carrying a stale token are rejected.
type Product struct {
	ID         uint            `json:"id" gorm:"primarykey"`
	Name       string          `json:"name" gorm:"type:varchar(200);not null;uniqueIndex"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(18,2);not null"`
	IsDeleted  bool            `json:"is_deleted" gorm:"not null;default:false"`
	Version    string          `json:"version" gorm:"type:varchar(36);not null"`
	CategoryID uint            `json:"category_id" gorm:"not null;index"`
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return apperr.Validation("Product", "Name", "is required")
	}
	if len(p.Name) > ProductNameMaxLen {
		return apperr.Validation("Product", "Name", "exceeds 200 characters")
	}
	if p.Price.IsNegative() {
		return apperr.Validation("Product", "Price", "must not be negative")
	}
	if p.CategoryID == 0 {
		return apperr.Validation("Product", "CategoryID", "is required")
	}
	return nil
}
