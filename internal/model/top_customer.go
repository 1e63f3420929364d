package model

import "github.com/shopspring/decimal"

// TopCustomer is a keyless projection backed by a SQL view. It is
// recomputed from customers and orders on every read and is never
// written to.
type TopCustomer struct {
	CustomerName string          `json:"customer_name" gorm:"column:customer_name"`
	TotalSpent   decimal.Decimal `json:"total_spent" gorm:"column:total_spent"`
}

// TopCustomersView is the name of the backing view.
const TopCustomersView = "view_top_customers_by_spending"

func (TopCustomer) TableName() string { return TopCustomersView }
