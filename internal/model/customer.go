package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"ecommerce-service/internal/apperr"
)

// Address is a value owned by its customer. It is persisted as a single
// JSON column, never as a row of its own.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// Value implements driver.Valuer so gorm can persist the address as one
// serialized column.
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *Address) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = Address{}
		return nil
	default:
		return fmt.Errorf("cannot scan address from %T", value)
	}
}

// Customer owns orders; deleting a customer cascades to them.
type Customer struct {
	ID       uint    `json:"id" gorm:"primarykey"`
	FullName string  `json:"full_name" gorm:"type:varchar(200);not null"`
	Address  Address `json:"address" gorm:"type:jsonb;not null"`
	Orders   []Order `json:"orders,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

func (c *Customer) Validate() error {
	if c.FullName == "" {
		return apperr.Validation("Customer", "FullName", "is required")
	}
	if len(c.FullName) > CustomerNameMaxLen {
		return apperr.Validation("Customer", "FullName", "exceeds 200 characters")
	}
	if len(c.Address.Street) > AddressStreetMaxLen {
		return apperr.Validation("Customer", "Address.Street", "exceeds 200 characters")
	}
	if len(c.Address.City) > AddressCityMaxLen {
		return apperr.Validation("Customer", "Address.City", "exceeds 100 characters")
	}
	if len(c.Address.PostalCode) > AddressPostalMaxLen {
		return apperr.Validation("Customer", "Address.PostalCode", "exceeds 20 characters")
	}
	return nil
}
