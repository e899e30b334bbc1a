package handler

import (
	"errors"
	"fmt"
	"net/http"

	"memori-server/internal/middleware"
	"memori-server/internal/models"
	"memori-server/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// BreakdownHandler serves the scene breakdown and idea capture HTTP API.
type BreakdownHandler struct {
	breakdowns service.BreakdownService
	ideas      service.IdeaService
	logger     *zap.Logger
	validate   *validator.Validate
	jwtSecret  string
}

// NewBreakdownHandler creates a new BreakdownHandler.
func NewBreakdownHandler(breakdowns service.BreakdownService, ideas service.IdeaService, logger *zap.Logger, jwtSecret string) *BreakdownHandler {
	return &BreakdownHandler{
		breakdowns: breakdowns,
		ideas:      ideas,
		logger:     logger.Named("BreakdownHandler"),
		validate:   validator.New(),
		jwtSecret:  jwtSecret,
	}
}

// RegisterRoutes registers all API routes behind the JWT auth middleware.
// Paths match what the web client calls.
func (h *BreakdownHandler) RegisterRoutes(e *echo.Echo) {
	authMiddleware := middleware.JWTAuthMiddleware(h.jwtSecret, h.logger)

	api := e.Group("/api", authMiddleware)
	{
		api.POST("/generate-scene-breakdown", h.generateSceneBreakdown)
		api.PUT("/update-scene-breakdown", h.updateSceneBreakdown)
		api.POST("/scene-breakdown/restore", h.restoreSceneBreakdown)
		api.GET("/scene-breakdown/history", h.getSceneBreakdownHistory)
		api.GET("/user/coins", h.getCoinBalance)

		api.POST("/ideas", h.createIdea)
		api.GET("/ideas", h.listIdeas)
		api.GET("/ideas/:id", h.getIdea)
		api.DELETE("/ideas/:id", h.deleteIdea)
	}
}

// getUserIDFromContext extracts the authenticated user's UUID set by the auth
// middleware.
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(middleware.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, models.ErrUnauthorized
	}
	return userID, nil
}

// handleServiceError maps service errors to HTTP statuses.
func handleServiceError(c echo.Context, err error) error {
	var statusCode int
	var apiErr APIError

	switch {
	case errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		apiErr = APIError{Message: "Unauthorized"}
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrIdeaNotFound):
		statusCode = http.StatusNotFound
		apiErr = APIError{Message: "Idea not found"}
	case errors.Is(err, models.ErrVersionNotFound):
		statusCode = http.StatusNotFound
		apiErr = APIError{Message: "Scene breakdown version not found"}
	case errors.Is(err, models.ErrInsufficientCoins):
		statusCode = http.StatusPaymentRequired
		apiErr = APIError{Message: "Not enough coins to generate a scene breakdown"}
	case errors.Is(err, models.ErrGenerationRateLimited):
		statusCode = http.StatusTooManyRequests
		apiErr = APIError{Message: "Rate limit exceeded. Please try again later."}
	case errors.Is(err, models.ErrGenerationUnavailable):
		statusCode = http.StatusServiceUnavailable
		apiErr = APIError{Message: "AI service error. Please try again."}
	case errors.Is(err, models.ErrGenerationFailed):
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Message: "Failed to generate scene breakdown"}
	case errors.Is(err, models.ErrBadRequest), errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		apiErr = APIError{Message: err.Error()}
	default:
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Message: "Internal server error"}
	}
	return c.JSON(statusCode, apiErr)
}

// bindAndValidate decodes the request body into req and validates it.
func (h *BreakdownHandler) bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		h.logger.Warn("Failed to bind request body", zap.Error(err))
		return fmt.Errorf("%w: malformed request body", models.ErrBadRequest)
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.Warn("Request validation failed", zap.Error(err))
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	return nil
}
