package models_test

import (
	"testing"

	"memori-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestParseSceneBreakdown(t *testing.T) {
	t.Run("JSON array round-trip", func(t *testing.T) {
		scenes := []models.Scene{
			{Scene: 1, Location: "kitchen", Camera: "wide", Action: "enter"},
			{Scene: 2, Location: "hallway", Camera: "close-up", Action: "pick up keys"},
		}

		content := models.FormatSceneBreakdown(scenes)
		parsed := models.ParseSceneBreakdown(content)

		assert.Equal(t, scenes, parsed)
	})

	t.Run("scenes wrapper object", func(t *testing.T) {
		content := `{"scenes":[{"scene":1,"location":"studio","camera":"medium","action":"talk"}]}`

		parsed := models.ParseSceneBreakdown(content)

		assert.Len(t, parsed, 1)
		assert.Equal(t, "studio", parsed[0].Location)
	})

	t.Run("empty content yields empty list", func(t *testing.T) {
		assert.Empty(t, models.ParseSceneBreakdown(""))
		assert.NotNil(t, models.ParseSceneBreakdown(""))
	})

	t.Run("legacy markdown content yields empty list", func(t *testing.T) {
		content := "## Scene 1\n- Location: kitchen\n- Camera: wide\n"

		parsed := models.ParseSceneBreakdown(content)

		assert.NotNil(t, parsed)
		assert.Empty(t, parsed)
	})

	t.Run("JSON null yields empty list", func(t *testing.T) {
		assert.Empty(t, models.ParseSceneBreakdown("null"))
		assert.NotNil(t, models.ParseSceneBreakdown("null"))
	})

	t.Run("non-array JSON yields empty list", func(t *testing.T) {
		assert.Empty(t, models.ParseSceneBreakdown(`"just a string"`))
		assert.Empty(t, models.ParseSceneBreakdown(`{"foo":"bar"}`))
	})

	t.Run("empty list round-trip", func(t *testing.T) {
		content := models.FormatSceneBreakdown(nil)

		assert.Equal(t, "[]", content)
		assert.Empty(t, models.ParseSceneBreakdown(content))
	})
}
