package api

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/greenmeal/backend/internal/aiparse"
	"github.com/pageza/greenmeal/backend/internal/middleware"
	"github.com/pageza/greenmeal/backend/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// sentence capitalizes the first letter of a service error message.
func sentence(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// upstreamError maps failures of the external APIs and the text model to a
// status and a user-visible message.
func upstreamError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNoIngredients):
		return http.StatusBadRequest, sentence(service.ErrNoIngredients.Error())
	case errors.Is(err, service.ErrRecipeNotFound):
		return http.StatusNotFound, "Recipe not found"
	case errors.Is(err, service.ErrMealPlanParse):
		return http.StatusBadGateway, service.ErrMealPlanParse.Error()
	case errors.Is(err, aiparse.ErrUnparseable):
		return http.StatusBadGateway, "failed to parse model response"
	case errors.Is(err, service.ErrSearchFailed):
		return http.StatusBadGateway, searchFailure(err)
	case errors.Is(err, service.ErrLLMRequest), errors.Is(err, service.ErrLLMEmptyResponse):
		return http.StatusBadGateway, "text model request failed"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

// searchFailure keeps "search failed: <status text>" and drops transport
// details that follow it.
func searchFailure(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, service.ErrSearchFailed.Error()); i >= 0 {
		msg = msg[i:]
	}
	if strings.Contains(msg, "://") {
		return service.ErrSearchFailed.Error()
	}
	return msg
}

// currentUser returns the authenticated user's ID or writes a 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "User not authenticated")
		return uuid.Nil, false
	}
	return id, true
}
