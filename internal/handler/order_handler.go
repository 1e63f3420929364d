package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ecommerce-service/internal/model"
	"ecommerce-service/internal/store"
	"ecommerce-service/pkg/logger"
	"ecommerce-service/prometheus"
)

// OrderItemRequest is one line of an order creation request
type OrderItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// OrderRequest defines the structure for order creation requests
type OrderRequest struct {
	CustomerID uint               `json:"customer_id"`
	Items      []OrderItemRequest `json:"items"`
}

// OrderStatusRequest carries a status transition
type OrderStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// ListOrders handles retrieving all orders, optionally by customer
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	var (
		orders []model.Order
		err    error
	)
	if customerID := c.QueryParam("customer_id"); customerID != "" {
		id, perr := strconv.ParseUint(customerID, 10, 32)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer_id"})
		}
		orders, err = st().Orders.ListByCustomer(ctx, uint(id))
	} else {
		orders, err = st().Orders.List(ctx)
	}
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordOrderOperation("list")
	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles retrieving a single order with its items
func GetOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	order, err := st().Orders.GetWithItems(c.Request().Context(), uint(id))
	if err != nil {
		log.Warn("Order not found", zap.Uint64("order_id", id), zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordOrderOperation("get")
	return c.JSON(http.StatusOK, order)
}

// CreateOrder stages the order and all its line items in one
// transaction: either everything becomes visible or nothing does. The
// total is computed from current product prices.
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "an order needs at least one item"})
	}

	ctx := c.Request().Context()
	order := model.Order{
		CustomerID:  req.CustomerID,
		OrderDate:   time.Now().UTC(),
		Status:      model.OrderStatusPending,
		TotalAmount: decimal.Zero,
	}

	err := st().WithinTx(ctx, func(tx *store.Tx) error {
		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			product, err := tx.Products.Get(ctx, item.ProductID)
			if err != nil {
				return err
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			items = append(items, model.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
		}
		order.TotalAmount = total
		return tx.Orders.CreateWithItems(ctx, &order, items)
	})
	if err != nil {
		log.Error("Failed to create order", zap.Uint("customer_id", req.CustomerID), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.String("total_amount", order.TotalAmount.String()))
	prometheus.RecordOrderOperation("create")
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrderStatus handles moving an order to a new status
func UpdateOrderStatus(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	var req OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := st().Orders.UpdateStatus(c.Request().Context(), uint(id), req.Status); err != nil {
		log.Warn("Failed to update order status",
			zap.Uint64("order_id", id),
			zap.String("status", string(req.Status)),
			zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordOrderOperation("update_status")
	return c.JSON(http.StatusOK, echo.Map{"message": "order status updated"})
}

// DeleteOrder handles deleting an order; items cascade, a payment blocks
func DeleteOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	if err := st().Orders.Delete(c.Request().Context(), uint(id)); err != nil {
		log.Warn("Failed to delete order", zap.Uint64("order_id", id), zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordOrderOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "order deleted"})
}
