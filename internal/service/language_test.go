package service_test

import (
	"testing"

	"memori-server/internal/models"
	"memori-server/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		expect models.Language
	}{
		{
			name:   "indonesian keywords",
			text:   "Video ini adalah tentang kopi yang dibuat dengan mesin espresso dari Italia",
			expect: models.LanguageIndonesian,
		},
		{
			name:   "spanish keywords",
			text:   "Una historia sobre el arte de preparar cafe en la cocina por las mananas",
			expect: models.LanguageSpanish,
		},
		{
			name:   "plain english defaults",
			text:   "A short film about morning coffee rituals shot in a small kitchen",
			expect: models.LanguageEnglish,
		},
		{
			name:   "uncertain input defaults to english",
			text:   "xyz 123",
			expect: models.LanguageEnglish,
		},
		{
			name:   "empty input defaults to english",
			text:   "",
			expect: models.LanguageEnglish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, service.DetectLanguage(tt.text))
		})
	}
}
