package model

import "ecommerce-service/internal/apperr"

// Category groups products. Deleting a category is blocked while
// products still reference it.
type Category struct {
	ID       uint      `json:"id" gorm:"primarykey"`
	Name     string    `json:"name" gorm:"type:varchar(100);not null"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return apperr.Validation("Category", "Name", "is required")
	}
	if len(c.Name) > CategoryNameMaxLen {
		return apperr.Validation("Category", "Name", "exceeds 100 characters")
	}
	return nil
}
