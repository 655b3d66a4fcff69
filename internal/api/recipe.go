package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/internal/middleware"
	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/types"
)

// RecipeHandler serves recipe search and detail lookups.
type RecipeHandler struct {
	pantry     service.IPantryService
	finder     service.IRecipeFinder
	details    service.IRecipeDetails
	thresholds service.Thresholds
	limiter    *middleware.RateLimiter
	log        *zap.Logger
}

func NewRecipeHandler(pantry service.IPantryService, finder service.IRecipeFinder, details service.IRecipeDetails, thresholds service.Thresholds, limiter *middleware.RateLimiter, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		pantry:     pantry,
		finder:     finder,
		details:    details,
		thresholds: thresholds,
		limiter:    limiter,
		log:        log,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		if h.limiter != nil {
			recipes.POST("/find", h.limiter.RateLimitMiddleware(), h.Find)
		} else {
			recipes.POST("/find", h.Find)
		}
		recipes.GET("/:id", h.GetRecipe)
	}
}

// Find searches recipes for the caller's pantry. An empty body uses the
// default thresholds and no diet filter.
func (h *RecipeHandler) Find(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.FindRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "Invalid search filters")
		return
	}

	th := h.thresholds
	if req.MaxPrepTime != nil {
		th.MaxPrepTime = *req.MaxPrepTime
	}
	if req.MaxCarbonFootprint != nil {
		th.MaxCarbonFootprint = *req.MaxCarbonFootprint
	}

	ingredients, err := h.pantry.Names(c.Request.Context(), userID.String())
	if err != nil {
		h.log.Error("failed to load pantry", zap.String("user_id", userID.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to load ingredients")
		return
	}

	result, err := h.finder.Find(c.Request.Context(), ingredients, service.FindRequest{
		DietTypes:  req.DietTypes,
		Thresholds: th,
	})
	if err != nil {
		status, msg := upstreamError(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("recipe search failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
		respondError(c, status, msg)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.details.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := upstreamError(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("recipe lookup failed", zap.String("recipe_id", c.Param("id")), zap.Error(err))
		}
		respondError(c, status, msg)
		return
	}
	c.JSON(http.StatusOK, recipe)
}
