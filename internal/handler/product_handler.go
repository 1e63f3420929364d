package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ecommerce-service/internal/apperr"
	"ecommerce-service/internal/model"
	"ecommerce-service/internal/store"
	"ecommerce-service/pkg/logger"
	"ecommerce-service/prometheus"
)

// ProductRequest defines the structure for product creation/update
// requests. Version carries the token read with the product and is
// required on updates.
type ProductRequest struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID uint            `json:"category_id"`
	Version    string          `json:"version,omitempty"`
}

func productReadOptions(c echo.Context) []store.ReadOption {
	if deleted, err := strconv.ParseBool(c.QueryParam("include_deleted")); err == nil && deleted {
		return []store.ReadOption{store.IncludeDeleted()}
	}
	return nil
}

// ListProducts handles retrieving products with optional filtering.
// Soft-deleted rows are excluded unless include_deleted=true.
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()
	opts := productReadOptions(c)

	var (
		products []model.Product
		err      error
	)
	if categoryID := c.QueryParam("category_id"); categoryID != "" {
		id, perr := strconv.ParseUint(categoryID, 10, 32)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
		}
		products, err = st().Products.ListByCategory(ctx, uint(id), opts...)
	} else {
		products, err = st().Products.List(ctx, opts...)
	}
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordProductOperation("list")
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	product, err := st().Products.Get(c.Request().Context(), uint(id), productReadOptions(c)...)
	if err != nil {
		log.Warn("Product not found", zap.Uint64("product_id", id), zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordProductOperation("get")
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	product := model.Product{
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: req.CategoryID,
	}
	if err := st().Products.Create(c.Request().Context(), &product); err != nil {
		log.Error("Failed to create product", zap.String("name", req.Name), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	prometheus.RecordProductOperation("create")
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating a product. The request must carry the
// version token from the last read; a stale token is rejected.
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Version == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "version token is required"})
	}

	product := model.Product{
		ID:         uint(id),
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: req.CategoryID,
		Version:    req.Version,
	}
	if err := st().Products.Update(c.Request().Context(), &product); err != nil {
		log.Warn("Failed to update product",
			zap.Uint64("product_id", id),
			zap.Error(err))
		if errors.Is(err, apperr.ErrConcurrencyConflict) {
			prometheus.RecordConcurrencyConflict()
		}
		return respondError(c, err)
	}

	prometheus.RecordProductOperation("update")
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles soft-deleting a product. The row stays in the
// store and keeps its unique name; default listings no longer show it.
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	version := c.QueryParam("version")
	if version == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "version token is required"})
	}

	newVersion, err := st().Products.SoftDelete(c.Request().Context(), uint(id), version)
	if err != nil {
		log.Warn("Failed to delete product", zap.Uint64("product_id", id), zap.Error(err))
		if errors.Is(err, apperr.ErrConcurrencyConflict) {
			prometheus.RecordConcurrencyConflict()
		}
		return respondError(c, err)
	}

	log.Info("Product soft-deleted", zap.Uint64("product_id", id))
	prometheus.RecordProductOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted", "version": newVersion})
}
