package normalization

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticsRemover разлагает символы в NFD, убирает комбинируемые знаки
// и собирает обратно в NFC: ô -> o, é -> e, ñ -> n и т.д.
var diacriticsRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeCountryName заменяет специальные символы в названии страны.
// Названия с диакритикой (Côte d'Ivoire, Türkiye) ломали сгенерированный
// текст в компоненте, поэтому сводим их к базовой латинице и нормализуем
// типографские кавычки и дефисы.
func SanitizeCountryName(name string) string {
	name = normalizeQuotes(name)
	name = normalizeHyphens(name)

	sanitized, _, err := transform.String(diacriticsRemover, name)
	if err != nil {
		return name
	}
	return sanitized
}

// normalizeQuotes приводит типографские кавычки к обычным
func normalizeQuotes(text string) string {
	replacements := map[rune]rune{
		'“': '"',  // Left double quotation mark
		'”': '"',  // Right double quotation mark
		'‘': '\'', // Left single quotation mark
		'’': '\'', // Right single quotation mark
		'«': '"',
		'»': '"',
		'„': '"',
		'‚': '\'',
	}

	var builder strings.Builder
	for _, r := range text {
		if replacement, ok := replacements[r]; ok {
			builder.WriteRune(replacement)
		} else {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// normalizeHyphens приводит длинные тире к обычному дефису
func normalizeHyphens(text string) string {
	text = strings.ReplaceAll(text, "—", "-")
	text = strings.ReplaceAll(text, "–", "-")
	text = strings.ReplaceAll(text, "−", "-")
	return text
}
