package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/types"
)

// PantryHandler serves the caller's ingredient list.
type PantryHandler struct {
	pantry service.IPantryService
	log    *zap.Logger
}

func NewPantryHandler(pantry service.IPantryService, log *zap.Logger) *PantryHandler {
	return &PantryHandler{pantry: pantry, log: log}
}

func (h *PantryHandler) RegisterRoutes(router *gin.RouterGroup) {
	pantry := router.Group("/pantry")
	{
		pantry.GET("", h.List)
		pantry.POST("", h.Add)
		pantry.DELETE("", h.Clear)
		pantry.DELETE("/:id", h.Remove)
		pantry.GET("/suggestions", h.Suggestions)
	}
}

func (h *PantryHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	ingredients, err := h.pantry.List(c.Request.Context(), userID.String())
	if err != nil {
		h.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func (h *PantryHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.AddIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	change, err := h.pantry.Add(c.Request.Context(), userID.String(), req.Name)
	if err != nil {
		if reason, ok := service.ValidationReason(err); ok {
			respondError(c, http.StatusUnprocessableEntity, sentence(reason))
			return
		}
		h.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, change)
}

func (h *PantryHandler) Remove(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	change, err := h.pantry.Remove(c.Request.Context(), userID.String(), c.Param("id"))
	if err != nil {
		h.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, change)
}

func (h *PantryHandler) Clear(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	change, err := h.pantry.Clear(c.Request.Context(), userID.String())
	if err != nil {
		h.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, change)
}

func (h *PantryHandler) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": h.pantry.Suggestions(c.Query("q"))})
}

func (h *PantryHandler) storeFailure(c *gin.Context, err error) {
	h.log.Error("pantry store failed", zap.Error(err))
	respondError(c, http.StatusInternalServerError, "Failed to update ingredients")
}
