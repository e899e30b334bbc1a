package handler

import (
	"net/http"
	"strconv"

	"memori-server/internal/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const defaultIdeaType = "Social Media Post"

func (h *BreakdownHandler) createIdea(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req createIdeaRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}
	if req.Type == "" {
		req.Type = defaultIdeaType
	}

	idea, err := h.ideas.Create(c.Request().Context(), userID, req.Text, req.Type)
	if err != nil {
		h.logger.Error("Idea creation failed", zap.String("userID", userID.String()), zap.Error(err))
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toIdeaDTO(idea))
}

func (h *BreakdownHandler) listIdeas(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	ideas, err := h.ideas.List(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Idea list failed", zap.String("userID", userID.String()), zap.Error(err))
		return handleServiceError(c, err)
	}

	dtos := make([]ideaDTO, 0, len(ideas))
	for i := range ideas {
		dtos = append(dtos, toIdeaDTO(&ideas[i]))
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *BreakdownHandler) getIdea(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	ideaID, err := parseIdeaID(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	idea, err := h.ideas.Get(c.Request().Context(), userID, ideaID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toIdeaDTO(idea))
}

func (h *BreakdownHandler) deleteIdea(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	ideaID, err := parseIdeaID(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	if err := h.ideas.Delete(c.Request().Context(), userID, ideaID); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func parseIdeaID(c echo.Context) (int64, error) {
	ideaID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || ideaID <= 0 {
		return 0, models.ErrInvalidInput
	}
	return ideaID, nil
}
