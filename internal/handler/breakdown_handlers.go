package handler

import (
	"net/http"
	"strconv"

	"memori-server/internal/models"
	"memori-server/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (h *BreakdownHandler) generateSceneBreakdown(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req generateSceneBreakdownRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	patterns := make([]models.ScenePattern, 0, len(req.Patterns))
	for _, p := range req.Patterns {
		patterns = append(patterns, models.ScenePattern{Name: p.Name, Description: p.Description})
	}

	result, err := h.breakdowns.Generate(c.Request().Context(), userID, service.GenerateParams{
		IdeaID:       req.IdeaID,
		Script:       req.Script,
		Language:     models.Language(req.Language),
		CustomPrompt: req.CustomPrompt,
		Patterns:     patterns,
	})
	if err != nil {
		h.logger.Warn("Scene breakdown generation failed",
			zap.String("userID", userID.String()), zap.Int64("ideaID", req.IdeaID), zap.Error(err))
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, generateSceneBreakdownResponse{
		Success:          true,
		Content:          result.Content,
		Version:          result.Version,
		RemainingBalance: result.RemainingBalance,
	})
}

func (h *BreakdownHandler) updateSceneBreakdown(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req updateSceneBreakdownRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	if err := h.breakdowns.ManualUpdate(c.Request().Context(), userID, req.IdeaID, req.Content); err != nil {
		h.logger.Warn("Scene breakdown update failed",
			zap.String("userID", userID.String()), zap.Int64("ideaID", req.IdeaID), zap.Error(err))
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *BreakdownHandler) restoreSceneBreakdown(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req restoreSceneBreakdownRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	content, err := h.breakdowns.Restore(c.Request().Context(), userID, req.IdeaID, req.Version)
	if err != nil {
		h.logger.Warn("Scene breakdown restore failed",
			zap.String("userID", userID.String()), zap.Int64("ideaID", req.IdeaID),
			zap.Int("version", req.Version), zap.Error(err))
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, restoreSceneBreakdownResponse{Success: true, Content: content})
}

func (h *BreakdownHandler) getSceneBreakdownHistory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	ideaID, err := strconv.ParseInt(c.QueryParam("ideaId"), 10, 64)
	if err != nil || ideaID <= 0 {
		return handleServiceError(c, models.ErrInvalidInput)
	}
	limit := parseQueryInt(c, "limit", 0)
	offset := parseQueryInt(c, "offset", 0)

	entries, total, err := h.breakdowns.ListHistory(c.Request().Context(), userID, ideaID, limit, offset)
	if err != nil {
		h.logger.Warn("Scene breakdown history fetch failed",
			zap.String("userID", userID.String()), zap.Int64("ideaID", ideaID), zap.Error(err))
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, sceneBreakdownHistoryResponse{
		Versions: toVersionDTOs(entries),
		Total:    total,
	})
}

func (h *BreakdownHandler) getCoinBalance(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	coins, err := h.breakdowns.GetBalance(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Coin balance fetch failed", zap.String("userID", userID.String()), zap.Error(err))
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, coinBalanceResponse{Coins: coins})
}

// parseQueryInt reads an optional integer query parameter, falling back to
// def on absence or parse failure.
func parseQueryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
