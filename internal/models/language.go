package models

// Language identifies the language a scene breakdown is generated in.
type Language string

const (
	LanguageEnglish    Language = "english"
	LanguageIndonesian Language = "indonesian"
	LanguageSpanish    Language = "spanish"
)

// SupportedLanguages lists the languages the generator can produce.
var SupportedLanguages = map[Language]struct{}{
	LanguageEnglish:    {},
	LanguageIndonesian: {},
	LanguageSpanish:    {},
}

// IsValid reports whether l is a supported language.
func (l Language) IsValid() bool {
	_, ok := SupportedLanguages[l]
	return ok
}
