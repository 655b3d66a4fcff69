package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/types"
)

// MealPlanHandler serves weekly meal plans and their export.
type MealPlanHandler struct {
	pantry service.IPantryService
	plans  service.IMealPlanService
	export service.IExportService
	log    *zap.Logger
}

func NewMealPlanHandler(pantry service.IPantryService, plans service.IMealPlanService, export service.IExportService, log *zap.Logger) *MealPlanHandler {
	return &MealPlanHandler{pantry: pantry, plans: plans, export: export, log: log}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plan")
	{
		plans.POST("", h.Generate)
		plans.GET("", h.Get)
		plans.POST("/export", h.Export)
	}
}

func (h *MealPlanHandler) Generate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ingredients, err := h.pantry.Names(c.Request.Context(), userID.String())
	if err != nil {
		h.log.Error("failed to load pantry", zap.String("user_id", userID.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to load ingredients")
		return
	}

	plan, err := h.plans.Generate(c.Request.Context(), userID, req.DietPreferences, ingredients)
	if err != nil {
		status, msg := upstreamError(err)
		if status == http.StatusInternalServerError {
			h.log.Error("meal plan generation failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
		respondError(c, status, msg)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	plan, err := h.plans.Get(c.Request.Context(), userID)
	if errors.Is(err, service.ErrMealPlanNotFound) {
		respondError(c, http.StatusNotFound, "No saved meal plan")
		return
	}
	if err != nil {
		h.log.Error("failed to load meal plan", zap.String("user_id", userID.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to load meal plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) Export(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	res, err := h.export.ExportMealPlan(c.Request.Context(), userID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, res)
	case errors.Is(err, service.ErrStorageNotConfigured):
		respondError(c, http.StatusServiceUnavailable, "Export storage is not configured")
	case errors.Is(err, service.ErrMealPlanNotFound):
		respondError(c, http.StatusNotFound, "No saved meal plan")
	default:
		h.log.Error("meal plan export failed", zap.String("user_id", userID.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to export meal plan")
	}
}
