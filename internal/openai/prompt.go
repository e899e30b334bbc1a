package openai

import (
	"fmt"
	"strings"

	"memori-server/internal/models"
)

// buildPrompt assembles the generation prompt. The base instructions mirror
// what the video-director prompt asks for (5-8 scenes, location/camera/action,
// raw JSON array output); caller customization and pattern hints are appended
// when present.
func buildPrompt(script string, language models.Language, opts GenerationOptions) string {
	isIndonesian := language == models.LanguageIndonesian
	isSpanish := language == models.LanguageSpanish

	var b strings.Builder

	switch {
	case isIndonesian:
		b.WriteString("You are a professional video director. Buat a scene breakdown for the following script.\n\n")
		b.WriteString("Buat dalam Bahasa Indonesia\n\n")
		b.WriteString("**Requirements**:\n")
		b.WriteString("- Buat 5-8 scene saja\n")
		b.WriteString("- Fokus pada: lokasi, jenis kamera, dan aksi utama\n")
		b.WriteString("- Jelaskan dengan ringkas dan jelas\n")
	case isSpanish:
		b.WriteString("You are a professional video director. Generate a scene breakdown for the following script.\n\n")
		b.WriteString("Generate in Spanish\n\n")
		b.WriteString("**Requirements**:\n")
		b.WriteString("- Create only 5-8 scenes maximum\n")
		b.WriteString("- Focus on: location, camera type, and main action\n")
		b.WriteString("- Keep descriptions brief and clear\n")
	default:
		b.WriteString("You are a professional video director. Generate a scene breakdown for the following script.\n\n")
		b.WriteString("Generate in English\n\n")
		b.WriteString("**Requirements**:\n")
		b.WriteString("- Create only 5-8 scenes maximum\n")
		b.WriteString("- Focus on: location, camera type, and main action\n")
		b.WriteString("- Keep descriptions brief and clear\n")
	}

	if opts.CustomPrompt != "" {
		b.WriteString("\n**Additional instructions**:\n")
		b.WriteString(opts.CustomPrompt)
		b.WriteString("\n")
	}

	if len(opts.Patterns) > 0 {
		b.WriteString("\n**Scene patterns to follow**:\n")
		for _, p := range opts.Patterns {
			if p.Name == "" && p.Description == "" {
				continue
			}
			b.WriteString(fmt.Sprintf("- %s: %s\n", p.Name, p.Description))
		}
	}

	b.WriteString("\n**IMPORTANT**: Return ONLY a JSON array. No markdown, no code blocks, just raw JSON like this:\n")
	b.WriteString(`[
  {"scene": 1, "location": "ruang tamu", "camera": "wide shot", "action": "tokoh utama masuk"},
  {"scene": 2, "location": "dapur", "camera": "close-up", "action": "mengambil kopi"}
]`)
	b.WriteString("\n\n**Script**:\n")
	b.WriteString(script)
	b.WriteString("\n\n**JSON Response**:\n")

	return b.String()
}
