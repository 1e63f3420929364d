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

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name string `json:"name"`
}

// ListCategories handles retrieving all categories
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)

	categories, err := st().Categories.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to list categories", zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordCategoryOperation("list")
	return c.JSON(http.StatusOK, categories)
}

// GetCategory handles retrieving a single category, optionally with its products
func GetCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	ctx := c.Request().Context()
	var category *model.Category
	if c.QueryParam("include") == "products" {
		category, err = st().Categories.GetWithProducts(ctx, uint(id))
	} else {
		category, err = st().Categories.Get(ctx, uint(id))
	}
	if err != nil {
		log.Warn("Category not found", zap.Uint64("category_id", id), zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordCategoryOperation("get")
	return c.JSON(http.StatusOK, category)
}

// CreateCategory handles creating a new category
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	category := model.Category{Name: req.Name}
	if err := st().Categories.Create(c.Request().Context(), &category); err != nil {
		log.Error("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Category created", zap.Uint("category_id", category.ID), zap.String("name", category.Name))
	prometheus.RecordCategoryOperation("create")
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles renaming a category
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	category := model.Category{ID: uint(id), Name: req.Name}
	if err := st().Categories.Update(c.Request().Context(), &category); err != nil {
		log.Error("Failed to update category", zap.Uint64("category_id", id), zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordCategoryOperation("update")
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles deleting a category; blocked while products reference it
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	if err := st().Categories.Delete(c.Request().Context(), uint(id)); err != nil {
		log.Warn("Failed to delete category", zap.Uint64("category_id", id), zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordCategoryOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted"})
}
