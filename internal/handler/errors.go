package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"ecommerce-service/internal/apperr"
	"ecommerce-service/internal/store"
	"ecommerce-service/pkg/database"
)

// st builds a store over the shared connection. The compiled query
// cache behind it is process-wide, so this is cheap.
func st() *store.Store {
	return store.New(database.GetDB())
}

// respondError maps the persistence error taxonomy to HTTP responses.
// The three 409 cases carry distinct messages: the caller's reaction
// differs between a duplicate, a blocked reference and a lost race.
func respondError(c echo.Context, err error) error {
	switch {
	case apperr.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	case errors.Is(err, apperr.ErrUniqueViolation):
		return c.JSON(http.StatusConflict, echo.Map{"error": "a record with the same unique value already exists"})
	case errors.Is(err, apperr.ErrForeignKeyViolation):
		return c.JSON(http.StatusConflict, echo.Map{"error": "the referenced record does not exist or is still referenced"})
	case errors.Is(err, apperr.ErrConcurrencyConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "the record was modified by another writer, re-read and retry"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
