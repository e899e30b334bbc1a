package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"memori-server/internal/handler"
	"memori-server/internal/middleware"
	"memori-server/internal/models"
	"memori-server/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const testJWTSecret = "test-secret"

// Mock BreakdownService
type mockBreakdownService struct {
	mock.Mock
}

func (m *mockBreakdownService) Generate(ctx context.Context, userID uuid.UUID, params service.GenerateParams) (*service.GenerateResult, error) {
	args := m.Called(ctx, userID, params)
	if result, ok := args.Get(0).(*service.GenerateResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBreakdownService) ManualUpdate(ctx context.Context, userID uuid.UUID, ideaID int64, content string) error {
	args := m.Called(ctx, userID, ideaID, content)
	return args.Error(0)
}

func (m *mockBreakdownService) Restore(ctx context.Context, userID uuid.UUID, ideaID int64, version int) (string, error) {
	args := m.Called(ctx, userID, ideaID, version)
	return args.String(0), args.Error(1)
}

func (m *mockBreakdownService) ListHistory(ctx context.Context, userID uuid.UUID, ideaID int64, limit, offset int) ([]models.SceneBreakdownVersion, int, error) {
	args := m.Called(ctx, userID, ideaID, limit, offset)
	if entries, ok := args.Get(0).([]models.SceneBreakdownVersion); ok {
		return entries, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *mockBreakdownService) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// Mock IdeaService
type mockIdeaService struct {
	mock.Mock
}

func (m *mockIdeaService) Create(ctx context.Context, userID uuid.UUID, text, ideaType string) (*models.Idea, error) {
	args := m.Called(ctx, userID, text, ideaType)
	if idea, ok := args.Get(0).(*models.Idea); ok {
		return idea, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIdeaService) Get(ctx context.Context, userID uuid.UUID, ideaID int64) (*models.Idea, error) {
	args := m.Called(ctx, userID, ideaID)
	if idea, ok := args.Get(0).(*models.Idea); ok {
		return idea, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIdeaService) List(ctx context.Context, userID uuid.UUID) ([]models.Idea, error) {
	args := m.Called(ctx, userID)
	if ideas, ok := args.Get(0).([]models.Idea); ok {
		return ideas, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIdeaService) Delete(ctx context.Context, userID uuid.UUID, ideaID int64) error {
	args := m.Called(ctx, userID, ideaID)
	return args.Error(0)
}

func setupTestServer(t *testing.T) (*echo.Echo, *mockBreakdownService, *mockIdeaService) {
	t.Helper()
	breakdowns := new(mockBreakdownService)
	ideas := new(mockIdeaService)
	h := handler.NewBreakdownHandler(breakdowns, ideas, zap.NewNop(), testJWTSecret)

	e := echo.New()
	h.RegisterRoutes(e)
	return e, breakdowns, ideas
}

func authHeaderFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := middleware.GenerateTestJWT(userID, testJWTSecret, time.Hour)
	assert.NoError(t, err)
	return "Bearer " + token
}

func doRequest(e *echo.Echo, method, target, authHeader, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const validScript = "A barista opens the shop at dawn, grinds fresh beans and serves the first customer of the day."

func TestAuthRejection(t *testing.T) {
	e, _, _ := setupTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/user/coins", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/user/coins", "NotBearer xyz", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with wrong secret", func(t *testing.T) {
		token, err := middleware.GenerateTestJWT(uuid.New(), "other-secret", time.Hour)
		assert.NoError(t, err)
		rec := doRequest(e, http.MethodGet, "/api/user/coins", "Bearer "+token, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := middleware.GenerateTestJWT(uuid.New(), testJWTSecret, -time.Minute)
		assert.NoError(t, err)
		rec := doRequest(e, http.MethodGet, "/api/user/coins", "Bearer "+token, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGenerateSceneBreakdownEndpoint(t *testing.T) {
	userID := uuid.New()
	content := `[{"scene":1,"location":"cafe","camera":"wide","action":"open shop"}]`

	t.Run("successful generation", func(t *testing.T) {
		e, breakdowns, _ := setupTestServer(t)
		breakdowns.On("Generate", mock.Anything, userID, mock.MatchedBy(func(p service.GenerateParams) bool {
			return p.IdeaID == 42 && p.Script == validScript && p.Language == models.LanguageEnglish
		})).Return(&service.GenerateResult{Content: content, Version: 3, RemainingBalance: 7}, nil).Once()

		body := `{"ideaId":42,"script":"` + validScript + `","language":"english"}`
		rec := doRequest(e, http.MethodPost, "/api/generate-scene-breakdown", authHeaderFor(t, userID), body)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Success          bool   `json:"success"`
			Content          string `json:"content"`
			Version          int    `json:"version"`
			RemainingBalance int    `json:"remainingBalance"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, content, resp.Content)
		assert.Equal(t, 3, resp.Version)
		assert.Equal(t, 7, resp.RemainingBalance)
		breakdowns.AssertExpectations(t)
	})

	t.Run("insufficient coins maps to 402", func(t *testing.T) {
		e, breakdowns, _ := setupTestServer(t)
		breakdowns.On("Generate", mock.Anything, userID, mock.Anything).
			Return(nil, models.ErrInsufficientCoins).Once()

		body := `{"ideaId":42,"script":"` + validScript + `"}`
		rec := doRequest(e, http.MethodPost, "/api/generate-scene-breakdown", authHeaderFor(t, userID), body)

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		breakdowns.AssertExpectations(t)
	})

	t.Run("rate limit maps to 429", func(t *testing.T) {
		e, breakdowns, _ := setupTestServer(t)
		breakdowns.On("Generate", mock.Anything, userID, mock.Anything).
			Return(nil, models.ErrGenerationRateLimited).Once()

		body := `{"ideaId":42,"script":"` + validScript + `"}`
		rec := doRequest(e, http.MethodPost, "/api/generate-scene-breakdown", authHeaderFor(t, userID), body)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		breakdowns.AssertExpectations(t)
	})

	t.Run("upstream outage maps to 503", func(t *testing.T) {
		e, breakdowns, _ := setupTestServer(t)
		breakdowns.On("Generate", mock.Anything, userID, mock.Anything).
			Return(nil, models.ErrGenerationUnavailable).Once()

		body := `{"ideaId":42,"script":"` + validScript + `"}`
		rec := doRequest(e, http.MethodPost, "/api/generate-scene-breakdown", authHeaderFor(t, userID), body)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		breakdowns.AssertExpectations(t)
	})

	t.Run("short script fails validation before the service", func(t *testing.T) {
		e, breakdowns, _ := setupTestServer(t)

		body := `{"ideaId":42,"script":"too short"}`
		rec := doRequest(e, http.MethodPost, "/api/generate-scene-breakdown", authHeaderFor(t, userID), body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		breakdowns.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown language fails validation", func(t *testing.T) {
		e, breakdowns, _ := setupTestServer(t)

		body := `{"ideaId":42,"script":"` + validScript + `","language":"klingon"}`
		rec := doRequest(e, http.MethodPost, "/api/generate-scene-breakdown", authHeaderFor(t, userID), body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		breakdowns.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateSceneBreakdownEndpoint(t *testing.T) {
	userID := uuid.New()

	t.Run("successful manual update", func(t *testing.T) {
		e, breakdowns, _ := setupTestServer(t)
		breakdowns.On("ManualUpdate", mock.Anything, userID, int64(7), "[]").Return(nil).Once()

		rec := doRequest(e, http.MethodPut, "/api/update-scene-breakdown", authHeaderFor(t, userID),
			`{"ideaId":7,"content":"[]"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Success bool `json:"success"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		breakdowns.AssertExpectations(t)
	})

	t.Run("unknown idea maps to 404", func(t *testing.T) {
		e, breakdowns, _ := setupTestServer(t)
		breakdowns.On("ManualUpdate", mock.Anything, userID, int64(999), "[]").
			Return(models.ErrNotFound).Once()

		rec := doRequest(e, http.MethodPut, "/api/update-scene-breakdown", authHeaderFor(t, userID),
			`{"ideaId":999,"content":"[]"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		breakdowns.AssertExpectations(t)
	})
}

func TestRestoreSceneBreakdownEndpoint(t *testing.T) {
	userID := uuid.New()
	historical := `[{"scene":1,"location":"park","camera":"drone","action":"fly over"}]`

	t.Run("successful restore", func(t *testing.T) {
		e, breakdowns, _ := setupTestServer(t)
		breakdowns.On("Restore", mock.Anything, userID, int64(7), 2).Return(historical, nil).Once()

		rec := doRequest(e, http.MethodPost, "/api/scene-breakdown/restore", authHeaderFor(t, userID),
			`{"ideaId":7,"version":2}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Success bool   `json:"success"`
			Content string `json:"content"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, historical, resp.Content)
		breakdowns.AssertExpectations(t)
	})

	t.Run("unknown version maps to 404", func(t *testing.T) {
		e, breakdowns, _ := setupTestServer(t)
		breakdowns.On("Restore", mock.Anything, userID, int64(7), 99).
			Return("", models.ErrVersionNotFound).Once()

		rec := doRequest(e, http.MethodPost, "/api/scene-breakdown/restore", authHeaderFor(t, userID),
			`{"ideaId":7,"version":99}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		breakdowns.AssertExpectations(t)
	})

	t.Run("zero version fails validation", func(t *testing.T) {
		e, breakdowns, _ := setupTestServer(t)

		rec := doRequest(e, http.MethodPost, "/api/scene-breakdown/restore", authHeaderFor(t, userID),
			`{"ideaId":7,"version":0}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		breakdowns.AssertNotCalled(t, "Restore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSceneBreakdownHistoryEndpoint(t *testing.T) {
	userID := uuid.New()

	t.Run("returns versions and total", func(t *testing.T) {
		e, breakdowns, _ := setupTestServer(t)
		generatedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		entries := []models.SceneBreakdownVersion{
			{ID: 2, IdeaID: 7, Content: "[]", Version: 2, GeneratedAt: generatedAt},
			{ID: 1, IdeaID: 7, Content: "[]", Version: 1, GeneratedAt: generatedAt.Add(-time.Hour)},
		}
		breakdowns.On("ListHistory", mock.Anything, userID, int64(7), 10, 5).
			Return(entries, 12, nil).Once()

		rec := doRequest(e, http.MethodGet, "/api/scene-breakdown/history?ideaId=7&limit=10&offset=5",
			authHeaderFor(t, userID), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Versions []struct {
				ID      int64 `json:"id"`
				Version int   `json:"version"`
			} `json:"versions"`
			Total int `json:"total"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Versions, 2)
		assert.Equal(t, 2, resp.Versions[0].Version)
		assert.Equal(t, 12, resp.Total)
		breakdowns.AssertExpectations(t)
	})

	t.Run("missing ideaId query parameter", func(t *testing.T) {
		e, breakdowns, _ := setupTestServer(t)

		rec := doRequest(e, http.MethodGet, "/api/scene-breakdown/history", authHeaderFor(t, userID), "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		breakdowns.AssertNotCalled(t, "ListHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCoinBalanceEndpoint(t *testing.T) {
	userID := uuid.New()

	e, breakdowns, _ := setupTestServer(t)
	breakdowns.On("GetBalance", mock.Anything, userID).Return(10, nil).Once()

	rec := doRequest(e, http.MethodGet, "/api/user/coins", authHeaderFor(t, userID), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Coins int `json:"coins"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Coins)
	breakdowns.AssertExpectations(t)
}

func TestIdeaEndpoints(t *testing.T) {
	userID := uuid.New()

	t.Run("create defaults the idea type", func(t *testing.T) {
		e, _, ideas := setupTestServer(t)
		idea := &models.Idea{ID: 1, UserID: userID, Text: "film the sunrise", Type: "Social Media Post"}
		ideas.On("Create", mock.Anything, userID, "film the sunrise", "Social Media Post").
			Return(idea, nil).Once()

		rec := doRequest(e, http.MethodPost, "/api/ideas", authHeaderFor(t, userID),
			`{"text":"film the sunrise"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		ideas.AssertExpectations(t)
	})

	t.Run("create without text fails validation", func(t *testing.T) {
		e, _, ideas := setupTestServer(t)

		rec := doRequest(e, http.MethodPost, "/api/ideas", authHeaderFor(t, userID), `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		ideas.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("list", func(t *testing.T) {
		e, _, ideas := setupTestServer(t)
		ideas.On("List", mock.Anything, userID).Return([]models.Idea{{ID: 1, UserID: userID}}, nil).Once()

		rec := doRequest(e, http.MethodGet, "/api/ideas", authHeaderFor(t, userID), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		ideas.AssertExpectations(t)
	})

	t.Run("get unknown idea maps to 404", func(t *testing.T) {
		e, _, ideas := setupTestServer(t)
		ideas.On("Get", mock.Anything, userID, int64(5)).Return(nil, models.ErrNotFound).Once()

		rec := doRequest(e, http.MethodGet, "/api/ideas/5", authHeaderFor(t, userID), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		ideas.AssertExpectations(t)
	})

	t.Run("delete", func(t *testing.T) {
		e, _, ideas := setupTestServer(t)
		ideas.On("Delete", mock.Anything, userID, int64(5)).Return(nil).Once()

		rec := doRequest(e, http.MethodDelete, "/api/ideas/5", authHeaderFor(t, userID), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		ideas.AssertExpectations(t)
	})

	t.Run("non-numeric idea id", func(t *testing.T) {
		e, _, ideas := setupTestServer(t)

		rec := doRequest(e, http.MethodGet, "/api/ideas/abc", authHeaderFor(t, userID), "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		ideas.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})
}
