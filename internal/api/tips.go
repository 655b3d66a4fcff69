package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/types"
)

// TipHandler serves sustainability tips.
type TipHandler struct {
	pantry service.IPantryService
	tips   service.ITipService
	log    *zap.Logger
}

func NewTipHandler(pantry service.IPantryService, tips service.ITipService, log *zap.Logger) *TipHandler {
	return &TipHandler{pantry: pantry, tips: tips, log: log}
}

func (h *TipHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/tips", h.Tip)
}

func (h *TipHandler) Tip(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.TipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "A valid diet_type is required")
		return
	}

	ingredients, err := h.pantry.Names(c.Request.Context(), userID.String())
	if err != nil {
		h.log.Error("failed to load pantry", zap.String("user_id", userID.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to load ingredients")
		return
	}

	tip, err := h.tips.Tip(c.Request.Context(), req.DietType, ingredients)
	if err != nil {
		status, msg := upstreamError(err)
		h.log.Warn("tip generation failed", zap.String("diet_type", string(req.DietType)), zap.Error(err))
		respondError(c, status, msg)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tip": tip})
}
