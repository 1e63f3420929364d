package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ecommerce-service/internal/model"
	"ecommerce-service/pkg/logger"
	"ecommerce-service/prometheus"
)

// PaymentRequest defines the structure for payment attachment requests.
// Method selects the variant; exactly the matching detail block must be
// supplied.
type PaymentRequest struct {
	OrderID    uint                     `json:"order_id"`
	Amount     decimal.Decimal          `json:"amount"`
	Method     model.PaymentMethod      `json:"method"`
	CreditCard *model.CreditCardDetails `json:"credit_card,omitempty"`
	PayPal     *model.PayPalDetails     `json:"paypal,omitempty"`
}

// ListPayments handles retrieving all payments, each resolved to its variant
func ListPayments(c echo.Context) error {
	log := logger.FromContext(c)

	payments, err := st().Payments.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to list payments", zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordPaymentOperation("list")
	return c.JSON(http.StatusOK, payments)
}

// GetOrderPayment handles retrieving the payment attached to an order
func GetOrderPayment(c echo.Context) error {
	log := logger.FromContext(c)
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	payment, err := st().Payments.GetByOrder(c.Request().Context(), uint(orderID))
	if err != nil {
		log.Warn("Payment not found for order", zap.Uint64("order_id", orderID), zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordPaymentOperation("get")
	return c.JSON(http.StatusOK, payment)
}

// AttachPayment handles recording a payment against an order. Each
// order takes at most one payment.
func AttachPayment(c echo.Context) error {
	log := logger.FromContext(c)

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	payment := model.Payment{
		OrderID:     req.OrderID,
		Amount:      req.Amount,
		PaymentDate: time.Now().UTC(),
		Method:      req.Method,
		CreditCard:  req.CreditCard,
		PayPal:      req.PayPal,
	}
	if err := st().Payments.Attach(c.Request().Context(), &payment); err != nil {
		log.Warn("Failed to attach payment",
			zap.Uint("order_id", req.OrderID),
			zap.String("method", string(req.Method)),
			zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Payment attached",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("order_id", payment.OrderID),
		zap.String("method", string(payment.Method)))
	prometheus.RecordPaymentOperation("attach")
	return c.JSON(http.StatusCreated, payment)
}

// DeletePayment handles removing a payment, releasing its order
func DeletePayment(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}

	if err := st().Payments.Delete(c.Request().Context(), uint(id)); err != nil {
		log.Warn("Failed to delete payment", zap.Uint64("payment_id", id), zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordPaymentOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "payment deleted"})
}
