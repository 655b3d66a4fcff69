package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/types"
)

// SavedRecipeHandler serves the caller's saved recipes.
type SavedRecipeHandler struct {
	saved service.ISavedRecipeService
	log   *zap.Logger
}

func NewSavedRecipeHandler(saved service.ISavedRecipeService, log *zap.Logger) *SavedRecipeHandler {
	return &SavedRecipeHandler{saved: saved, log: log}
}

func (h *SavedRecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	saved := router.Group("/saved-recipes")
	{
		saved.POST("", h.Save)
		saved.GET("", h.List)
		saved.DELETE("/:id", h.Delete)
	}
}

func (h *SavedRecipeHandler) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var recipe types.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid recipe")
		return
	}

	saved, err := h.saved.Save(c.Request.Context(), userID, recipe)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"saved_recipe": saved})
	case errors.Is(err, service.ErrSavedRecipeIncomplete):
		respondError(c, http.StatusBadRequest, sentence(err.Error()))
	case errors.Is(err, service.ErrRecipeAlreadySaved):
		respondError(c, http.StatusConflict, "Recipe already saved")
	default:
		h.log.Error("failed to save recipe", zap.String("recipe_id", recipe.ID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to save recipe")
	}
}

func (h *SavedRecipeHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipes, err := h.saved.List(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		h.log.Error("failed to list saved recipes", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch saved recipes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved_recipes": recipes})
}

func (h *SavedRecipeHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid saved recipe ID")
		return
	}

	err = h.saved.Delete(c.Request.Context(), userID, id)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, service.ErrSavedRecipeNotFound):
		respondError(c, http.StatusNotFound, "Saved recipe not found")
	default:
		h.log.Error("failed to delete saved recipe", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to delete saved recipe")
	}
}
