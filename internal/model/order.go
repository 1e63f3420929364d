package model

import (
	"time"

	"github.com/shopspring/decimal"

	"ecommerce-service/internal/apperr"
)

// OrderStatus is stored as a string column, mirroring the enum-to-string
// conversion of the original schema.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

// Valid reports whether s is one of the enumerated statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// Order belongs to a customer by foreign key. The customer itself is
// looked up on demand rather than held as a back pointer, so the
// Customer -> Orders -> Customer cycle never exists in memory.
type Order struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	OrderDate   time.Time       `json:"order_date" gorm:"not null"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(18,2);not null"`
	Status      OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'Pending'"`
	CustomerID  uint            `json:"customer_id" gorm:"not null;index"`
	OrderItems  []OrderItem     `json:"order_items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment     *PaymentRecord  `json:"payment,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
}

func (o *Order) Validate() error {
	if !o.Status.Valid() {
		return apperr.Validation("Order", "Status", "is not a recognized status")
	}
	if o.TotalAmount.IsNegative() {
		return apperr.Validation("Order", "TotalAmount", "must not be negative")
	}
	if o.CustomerID == 0 {
		return apperr.Validation("Order", "CustomerID", "is required")
	}
	return nil
}

// OrderItem links an order to a product. It is deleted with its order;
// the referenced product is delete-restricted.
type OrderItem struct {
	ID        uint     `json:"id" gorm:"primarykey"`
	OrderID   uint     `json:"order_id" gorm:"not null;index"`
	ProductID uint     `json:"product_id" gorm:"not null;index"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity  int      `json:"quantity" gorm:"not null"`
}

func (i *OrderItem) Validate() error {
	if i.Quantity < 1 {
		return apperr.Validation("OrderItem", "Quantity", "must be at least 1")
	}
	if i.ProductID == 0 {
		return apperr.Validation("OrderItem", "ProductID", "is required")
	}
	return nil
}
