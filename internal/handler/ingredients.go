package handler

import (
	"net/http"

	"github.com/mikoypft/lztmeat/internal/apierror"
	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/service"

	"github.com/gin-gonic/gin"
)

type IngredientsHandler struct{ svc service.IngredientService }

func NewIngredientsHandler(svc service.IngredientService) *IngredientsHandler {
	return &IngredientsHandler{svc: svc}
}

func (h *IngredientsHandler) Create(c *gin.Context) {
	var req dto.CreateIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *IngredientsHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientsHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.List(c.Request.Context(), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list ingredients"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Adjust godoc
// @Summary      Adjust ingredient stock
// @Description  Applies a signed correction to the ingredient's facility stock under a row lock.
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                      true "Ingredient UUID"
// @Param        body body dto.AdjustIngredientRequest true "Adjustment detail"
// @Success      200  {object} dto.IngredientResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/ingredients/{id}/adjust [patch]
func (h *IngredientsHandler) Adjust(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AdjustIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Adjust(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientsHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
