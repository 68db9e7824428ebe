package codegen

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"whoannex/extraction"
	"whoannex/normalization"
)

// FormatNumericValue форматирует значение индикатора для вставки в текст.
// Кратчайшая форма, которая разбирается обратно в то же самое float64,
// поэтому повторный разбор при верификации дает точное совпадение.
func FormatNumericValue(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// RenderCountryEntry рендерит блок одной страны в формате объекта компонента
func RenderCountryEntry(code string, data *extraction.CountryData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "    '%s': {\n", code)
	fmt.Fprintf(&b, "      name: '%s',\n", normalization.EscapeJSString(data.Name))
	b.WriteString("      indicators: {\n")

	indicators := make([]string, 0, len(data.Indicators))
	for indicator := range data.Indicators {
		indicators = append(indicators, indicator)
	}
	sort.Strings(indicators)

	for _, indicator := range indicators {
		fmt.Fprintf(&b, "        '%s': %s,\n",
			normalization.EscapeJSString(indicator),
			FormatNumericValue(data.Indicators[indicator]))
	}

	b.WriteString("      }\n")
	b.WriteString("    },\n")

	return b.String()
}

// RenderCountriesBlock рендерит все страны набора данных, по кодам в
// алфавитном порядке
func RenderCountriesBlock(dataset extraction.Dataset) string {
	var b strings.Builder
	for _, code := range dataset.CountryCodes() {
		b.WriteString(RenderCountryEntry(code, dataset[code]))
	}
	return b.String()
}

// WriteReplacementFile пишет файл замены: баннер с комментариями, затем
// объект стран под заданным именем переменной
func WriteReplacementFile(path, varName string, banner []string, dataset extraction.Dataset) error {
	var b strings.Builder
	for _, line := range banner {
		fmt.Fprintf(&b, "// %s\n", line)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "const %s = {\n", varName)
	b.WriteString(RenderCountriesBlock(dataset))
	b.WriteString("};\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write replacement file: %w", err)
	}
	return nil
}

// RenderAuthenticModule рендерит полный JS-модуль с функцией генерации данных
// и списком индикаторов, как его ожидает фронтенд
func RenderAuthenticModule(dataset extraction.Dataset, indicators []string) string {
	var b strings.Builder

	b.WriteString("// WHO Statistical Annex data - Authentic data from WHO CSV\n")
	b.WriteString("export function generateAuthenticWHOData() {\n")
	b.WriteString("  const healthIndicators = [\n")
	for _, indicator := range indicators {
		fmt.Fprintf(&b, "    '%s',\n", normalization.EscapeJSString(indicator))
	}
	b.WriteString("  ];\n")
	b.WriteString("\n")
	b.WriteString("  const countries = generateComprehensiveHealthData();\n")
	b.WriteString("\n")
	b.WriteString("  // Calculate health scores for all countries using the same algorithm as the map\n")
	b.WriteString("  const countriesWithScores: Record<string, any> = {};\n")
	b.WriteString("\n")
	b.WriteString("  Object.entries(countries).forEach(([iso3, countryData]: [string, any]) => {\n")
	b.WriteString("    const healthScore = calculateWHOHealthScore(\n")
	b.WriteString("      countryData.indicators,\n")
	b.WriteString("      countries,\n")
	b.WriteString("      healthIndicators\n")
	b.WriteString("    );\n")
	b.WriteString("\n")
	b.WriteString("    countriesWithScores[iso3] = {\n")
	b.WriteString("      ...countryData,\n")
	b.WriteString("      healthScore\n")
	b.WriteString("    };\n")
	b.WriteString("  });\n")
	b.WriteString("\n")
	b.WriteString("  return {\n")
	b.WriteString("    healthIndicators,\n")
	b.WriteString("    countries: countriesWithScores\n")
	b.WriteString("  };\n")
	b.WriteString("}\n")
	b.WriteString("\n")
	b.WriteString("function generateComprehensiveHealthData() {\n")
	b.WriteString("  const countryHealthData: Record<string, { name: string; indicators: Record<string, number> }> = {};\n")
	b.WriteString("\n")

	for _, code := range dataset.CountryCodes() {
		data := dataset[code]
		fmt.Fprintf(&b, "  // %s\n", data.Name)
		fmt.Fprintf(&b, "  countryHealthData['%s'] = {\n", code)
		fmt.Fprintf(&b, "    name: '%s',\n", normalization.EscapeJSString(data.Name))
		b.WriteString("    indicators: {\n")

		names := make([]string, 0, len(data.Indicators))
		for indicator := range data.Indicators {
			names = append(names, indicator)
		}
		sort.Strings(names)
		for _, indicator := range names {
			fmt.Fprintf(&b, "      '%s': %s,\n",
				normalization.EscapeJSString(indicator),
				FormatNumericValue(data.Indicators[indicator]))
		}

		b.WriteString("    }\n")
		b.WriteString("  };\n")
		b.WriteString("\n")
	}

	b.WriteString("  return countryHealthData;\n")
	b.WriteString("}\n")

	return b.String()
}

// WriteMissingReport пишет отчет по индикаторам, отклоненным при извлечении
func WriteMissingReport(path string, dataset extraction.Dataset, missing map[string]map[string]bool) error {
	var b strings.Builder
	b.WriteString("=== CSV MISSING DATA REPORT ===\n\n")

	codes := make([]string, 0, len(missing))
	for code := range missing {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		set := missing[code]
		if len(set) == 0 {
			continue
		}
		name := code
		if data, ok := dataset[code]; ok {
			name = data.Name
		}
		fmt.Fprintf(&b, "%s (%s):\n", code, name)

		indicators := make([]string, 0, len(set))
		for indicator := range set {
			indicators = append(indicators, indicator)
		}
		sort.Strings(indicators)
		for _, indicator := range indicators {
			fmt.Fprintf(&b, "  - %s\n", indicator)
		}
		fmt.Fprintf(&b, "  Total missing: %d\n\n", len(indicators))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write missing data report: %w", err)
	}
	return nil
}
