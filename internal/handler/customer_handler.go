package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ecommerce-service/internal/model"
	"ecommerce-service/pkg/logger"
	"ecommerce-service/prometheus"
)

// CustomerRequest defines the structure for customer creation/update requests
type CustomerRequest struct {
	FullName string        `json:"full_name"`
	Address  model.Address `json:"address"`
}

// ListCustomers handles retrieving all customers
func ListCustomers(c echo.Context) error {
	log := logger.FromContext(c)

	customers, err := st().Customers.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to list customers", zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordCustomerOperation("list")
	return c.JSON(http.StatusOK, customers)
}

// GetCustomer handles retrieving a single customer, optionally with its orders
func GetCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	ctx := c.Request().Context()
	var customer *model.Customer
	if c.QueryParam("include") == "orders" {
		customer, err = st().Customers.GetWithOrders(ctx, uint(id))
	} else {
		customer, err = st().Customers.Get(ctx, uint(id))
	}
	if err != nil {
		log.Warn("Customer not found", zap.Uint64("customer_id", id), zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordCustomerOperation("get")
	return c.JSON(http.StatusOK, customer)
}

// CreateCustomer handles creating a new customer
func CreateCustomer(c echo.Context) error {
	log := logger.FromContext(c)

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	customer := model.Customer{FullName: req.FullName, Address: req.Address}
	if err := st().Customers.Create(c.Request().Context(), &customer); err != nil {
		log.Error("Failed to create customer", zap.String("full_name", req.FullName), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Customer created", zap.Uint("customer_id", customer.ID))
	prometheus.RecordCustomerOperation("create")
	return c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer handles updating a customer's name and address
func UpdateCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	customer := model.Customer{ID: uint(id), FullName: req.FullName, Address: req.Address}
	if err := st().Customers.Update(c.Request().Context(), &customer); err != nil {
		log.Error("Failed to update customer", zap.Uint64("customer_id", id), zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordCustomerOperation("update")
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles deleting a customer; its orders and their
// items are cascade-deleted, an attached payment blocks the delete
func DeleteCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	if err := st().Customers.Delete(c.Request().Context(), uint(id)); err != nil {
		log.Warn("Failed to delete customer", zap.Uint64("customer_id", id), zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordCustomerOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "customer deleted"})
}

// TopCustomers handles reading the derived spending view
func TopCustomers(c echo.Context) error {
	log := logger.FromContext(c)

	top, err := st().Customers.TopCustomers(c.Request().Context())
	if err != nil {
		log.Error("Failed to read top customers", zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordCustomerOperation("top_spenders")
	return c.JSON(http.StatusOK, top)
}
