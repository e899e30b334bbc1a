package service

import (
	"strings"

	"memori-server/internal/models"
)

// Keyword lists for the language heuristic. Common function words that are
// frequent in almost any text of the language.
var (
	indonesianKeywords = []string{"yang", "dan", "untuk", "adalah", "dengan", "di", "ke", "dari"}
	spanishKeywords    = []string{"el", "la", "de", "que", "y", "en", "por", "para"}
)

// DetectLanguage guesses the script language by keyword matching.
// Used only when the caller does not specify a language explicitly; defaults
// to English when uncertain and never fails.
func DetectLanguage(text string) models.Language {
	lower := strings.ToLower(text)

	indoCount := 0
	for _, kw := range indonesianKeywords {
		if strings.Contains(lower, kw) {
			indoCount++
		}
	}
	if indoCount >= 2 {
		return models.LanguageIndonesian
	}

	spanishCount := 0
	for _, kw := range spanishKeywords {
		if strings.Contains(lower, kw) {
			spanishCount++
		}
	}
	if spanishCount >= 2 {
		return models.LanguageSpanish
	}

	return models.LanguageEnglish
}
