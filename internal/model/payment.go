package model

import (
	"time"

	"github.com/shopspring/decimal"

	"ecommerce-service/internal/apperr"
)

// PaymentMethod is the discriminator stored with every payment row.
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "CreditCard"
	PaymentMethodPayPal     PaymentMethod = "PayPal"
)

// CreditCardDetails is the payload specific to card payments.
type CreditCardDetails struct {
	CardNumber string `json:"card_number"`
}

// PayPalDetails is the payload specific to PayPal payments.
type PayPalDetails struct {
	Email string `json:"email"`
}

// Payment is the tagged variant seen by callers: exactly one of
// CreditCard / PayPal is populated, and Method says which. The store's
// resolver is the only code that maps this to and from the physical row.
type Payment struct {
	ID          uint               `json:"id"`
	OrderID     uint               `json:"order_id"`
	Amount      decimal.Decimal    `json:"amount"`
	PaymentDate time.Time          `json:"payment_date"`
	Method      PaymentMethod      `json:"method"`
	CreditCard  *CreditCardDetails `json:"credit_card,omitempty"`
	PayPal      *PayPalDetails     `json:"paypal,omitempty"`
}

func (p *Payment) Validate() error {
	if p.OrderID == 0 {
		return apperr.Validation("Payment", "OrderID", "is required")
	}
	if p.Amount.IsNegative() {
		return apperr.Validation("Payment", "Amount", "must not be negative")
	}
	switch p.Method {
	case PaymentMethodCreditCard:
		if p.CreditCard == nil || p.CreditCard.CardNumber == "" {
			return apperr.Validation("Payment", "CreditCard.CardNumber", "is required for card payments")
		}
		if len(p.CreditCard.CardNumber) > PaymentCardNumberMaxLen {
			return apperr.Validation("Payment", "CreditCard.CardNumber", "exceeds 50 characters")
		}
		if p.PayPal != nil {
			return apperr.Validation("Payment", "PayPal", "must not be set on a card payment")
		}
	case PaymentMethodPayPal:
		if p.PayPal == nil || p.PayPal.Email == "" {
			return apperr.Validation("Payment", "PayPal.Email", "is required for PayPal payments")
		}
		if len(p.PayPal.Email) > PaymentEmailMaxLen {
			return apperr.Validation("Payment", "PayPal.Email", "exceeds 255 characters")
		}
		if p.CreditCard != nil {
			return apperr.Validation("Payment", "CreditCard", "must not be set on a PayPal payment")
		}
	default:
		return apperr.Validation("Payment", "Method", "is not a recognized payment method")
	}
	return nil
}

// PaymentRecord is the single-table shape of the payment hierarchy: a
// discriminator column plus the union of all variant columns, unused
// ones left NULL. One row per order.
type PaymentRecord struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(18,2);not null"`
	PaymentDate time.Time       `json:"payment_date" gorm:"not null"`
	OrderID     uint            `json:"order_id" gorm:"not null;uniqueIndex"`
	PaymentType string          `json:"payment_type" gorm:"type:varchar(50);not null"`
	CardNumber  *string         `json:"card_number,omitempty" gorm:"type:varchar(50)"`
	PayPalEmail *string         `json:"paypal_email,omitempty" gorm:"type:varchar(255)"`
}

// TableName keeps the physical name independent of the Go type.
func (PaymentRecord) TableName() string { return "payments" }
