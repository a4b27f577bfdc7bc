package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/mikoypft/lztmeat/internal/apierror"
	"github.com/mikoypft/lztmeat/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeServiceError maps domain errors to HTTP statuses. Insufficient stock is
// a conflict (the request was valid, the current state forbids it); the
// structured payload carries the shortfall for the client.
func writeServiceError(c *gin.Context, err error) {
	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusConflict, gin.H{
			"detail":      stockErr.Error(),
			"product_id":  stockErr.ProductID.String(),
			"location_id": stockErr.LocationID.String(),
			"requested":   stockErr.Requested,
			"available":   stockErr.Available,
			"shortfall":   stockErr.Shortfall(),
		})
		return
	}
	var ingredientErr *service.InsufficientIngredientError
	if errors.As(err, &ingredientErr) {
		c.JSON(http.StatusConflict, gin.H{
			"detail":        ingredientErr.Error(),
			"ingredient_id": ingredientErr.IngredientID.String(),
			"requested":     ingredientErr.Requested,
			"available":     ingredientErr.Available,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidRoute),
		errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

// parseID parses the :id path parameter as a UUID, writing a 400 on failure.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return uuid.Nil, false
	}
	return id, true
}
