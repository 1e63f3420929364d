// Package model declares the domain entities and the physical shape
// they map to: column types and lengths, key and foreign-key
// constraints with their delete behavior, the unique product name
// index, and the payment discriminator. The migration runner consumes
// AllModels; at runtime the declared limits back the Validate methods
// so a bad write fails before it reaches the storage backend.
package model

// Declared column limits. Validate methods enforce these so violations
// fail fast instead of surfacing as engine truncation errors.
const (
	CategoryNameMaxLen      = 100
	ProductNameMaxLen       = 200
	CustomerNameMaxLen      = 200
	AddressStreetMaxLen     = 200
	AddressCityMaxLen       = 100
	AddressPostalMaxLen     = 20
	OrderStatusMaxLen       = 20
	PaymentTypeMaxLen       = 50
	PaymentCardNumberMaxLen = 50
	PaymentEmailMaxLen      = 255
)

// AllModels lists every table-backed entity in dependency order for the
// migration runner. TopCustomer is view-backed and deliberately absent.
func AllModels() []interface{} {
	return []interface{}{
		&Category{},
		&Product{},
		&Customer{},
		&Order{},
		&OrderItem{},
		&PaymentRecord{},
	}
}
