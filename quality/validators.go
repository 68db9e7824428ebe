package quality

import (
	"fmt"
	"strings"

	"whoannex/extraction"
)

// Issue проблема, найденная в сгенерированном тексте
type Issue struct {
	Line    int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s", i.Line, i.Message)
}

// ValidateLocationCode проверяет, что код пригоден как ключ страны:
// три латинские буквы и не региональный агрегат
func ValidateLocationCode(code string) bool {
	if !extraction.IsCountryCode(code) {
		return false
	}
	return !extraction.IsRegionalAggregate("", code)
}

// ValidateNumericValue проверяет сырое значение из CSV и возвращает причину отказа
func ValidateNumericValue(raw string) (float64, bool, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false, "empty value"
	}
	if trimmed == "NO DATA" || strings.EqualFold(trimmed, "nan") {
		return 0, false, "no-data marker"
	}
	value, ok := extraction.AcceptNumericValue(trimmed)
	if !ok {
		return 0, false, "not a finite number"
	}
	return value, true, ""
}

// ValidateGeneratedBlock ищет в сгенерированном блоке стран класс ошибок,
// из-за которых компонент переставал собираться: неэкранированные
// апострофы внутри строковых литералов и несбалансированные скобки.
func ValidateGeneratedBlock(block string) []Issue {
	var issues []Issue
	braceDepth := 0

	for lineNo, line := range strings.Split(block, "\n") {
		inString := false
		escaped := false
		quotes := 0

		for _, r := range line {
			if escaped {
				escaped = false
				continue
			}
			switch r {
			case '\\':
				if inString {
					escaped = true
				}
			case '\'':
				inString = !inString
				quotes++
			case '{':
				if !inString {
					braceDepth++
				}
			case '}':
				if !inString {
					braceDepth--
				}
			}
		}

		if inString {
			issues = append(issues, Issue{
				Line:    lineNo + 1,
				Message: fmt.Sprintf("unterminated string literal (%d quotes): %s", quotes, strings.TrimSpace(line)),
			})
		}
		if braceDepth < 0 {
			issues = append(issues, Issue{
				Line:    lineNo + 1,
				Message: "unbalanced closing brace",
			})
			braceDepth = 0
		}
	}

	if braceDepth != 0 {
		issues = append(issues, Issue{
			Line:    strings.Count(block, "\n") + 1,
			Message: fmt.Sprintf("unbalanced braces at end of block (depth %d)", braceDepth),
		})
	}

	return issues
}
