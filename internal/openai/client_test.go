package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"syscall"
	"testing"

	"memori-server/internal/models"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

func TestMapAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect error
	}{
		{
			name:   "429 maps to rate limited",
			err:    &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests},
			expect: models.ErrGenerationRateLimited,
		},
		{
			name:   "500 API error maps to unavailable",
			err:    &openai.APIError{HTTPStatusCode: http.StatusInternalServerError},
			expect: models.ErrGenerationUnavailable,
		},
		{
			name:   "503 request error maps to unavailable",
			err:    &openai.RequestError{HTTPStatusCode: http.StatusServiceUnavailable},
			expect: models.ErrGenerationUnavailable,
		},
		{
			name:   "connection reset maps to unavailable",
			err:    syscall.ECONNRESET,
			expect: models.ErrGenerationUnavailable,
		},
		{
			name:   "deadline exceeded maps to unavailable",
			err:    context.DeadlineExceeded,
			expect: models.ErrGenerationUnavailable,
		},
		{
			name:   "400 API error maps to plain failure",
			err:    &openai.APIError{HTTPStatusCode: http.StatusBadRequest},
			expect: models.ErrGenerationFailed,
		},
		{
			name:   "arbitrary error maps to plain failure",
			err:    errors.New("boom"),
			expect: models.ErrGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapAPIError(tt.err), tt.expect)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	script := "A cyclist crosses the city at night."

	t.Run("english base prompt", func(t *testing.T) {
		prompt := buildPrompt(script, models.LanguageEnglish, GenerationOptions{})

		assert.Contains(t, prompt, "Generate in English")
		assert.Contains(t, prompt, "Create only 5-8 scenes maximum")
		assert.Contains(t, prompt, "Return ONLY a JSON array")
		assert.Contains(t, prompt, script)
		assert.NotContains(t, prompt, "Additional instructions")
		assert.NotContains(t, prompt, "Scene patterns to follow")
	})

	t.Run("indonesian instructions", func(t *testing.T) {
		prompt := buildPrompt(script, models.LanguageIndonesian, GenerationOptions{})

		assert.Contains(t, prompt, "Buat dalam Bahasa Indonesia")
		assert.Contains(t, prompt, "Buat 5-8 scene saja")
	})

	t.Run("spanish instructions", func(t *testing.T) {
		prompt := buildPrompt(script, models.LanguageSpanish, GenerationOptions{})

		assert.Contains(t, prompt, "Generate in Spanish")
	})

	t.Run("custom prompt and patterns are appended", func(t *testing.T) {
		prompt := buildPrompt(script, models.LanguageEnglish, GenerationOptions{
			CustomPrompt: "Prefer handheld shots",
			Patterns: []models.ScenePattern{
				{Name: "hook", Description: "open with a close-up"},
				{}, // empty entries are skipped
			},
		})

		assert.Contains(t, prompt, "Prefer handheld shots")
		assert.Contains(t, prompt, "- hook: open with a close-up")
		assert.Equal(t, 1, strings.Count(prompt, "\n- hook"))
	})

	t.Run("script comes before the response marker", func(t *testing.T) {
		prompt := buildPrompt(script, models.LanguageEnglish, GenerationOptions{})

		scriptIdx := strings.Index(prompt, script)
		markerIdx := strings.Index(prompt, "**JSON Response**")
		assert.Greater(t, markerIdx, scriptIdx)
	})
}
