package verification

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"whoannex/codegen"
	"whoannex/extraction"
	"whoannex/normalization"
)

// countryEntryPattern разбирает блок одной страны в сгенерированном тексте.
// Название может содержать экранированные кавычки (Cote d\'Ivoire).
var countryEntryPattern = regexp.MustCompile(`(?s)'([A-Z]{3})':\s*\{\s*name:\s*'((?:[^'\\]|\\.)*)',\s*indicators:\s*\{([^}]*)\}`)

// indicatorPattern разбирает пару "индикатор: значение" внутри блока страны
var indicatorPattern = regexp.MustCompile(`'((?:[^'\\]|\\.)*)':\s*(-?[0-9][0-9.eE+-]*),`)

// ParseCountriesBlock разбирает содержимое объекта стран обратно в набор данных.
// Это обратная операция к codegen: по ней сверяется то, что реально
// лежит в компоненте, а не то, что мы собирались туда записать.
func ParseCountriesBlock(block string) extraction.Dataset {
	dataset := make(extraction.Dataset)

	for _, entry := range countryEntryPattern.FindAllStringSubmatch(block, -1) {
		code := entry[1]
		name := normalization.UnescapeJSString(entry[2])
		indicatorsContent := entry[3]

		indicators := make(map[string]float64)
		for _, pair := range indicatorPattern.FindAllStringSubmatch(indicatorsContent, -1) {
			value, err := strconv.ParseFloat(pair[2], 64)
			if err != nil {
				continue
			}
			indicators[normalization.UnescapeJSString(pair[1])] = value
		}

		if len(indicators) > 0 {
			dataset[code] = &extraction.CountryData{Name: name, Indicators: indicators}
		}
	}

	return dataset
}

// ParseComponentFile извлекает и разбирает объект стран из файла компонента
func ParseComponentFile(componentPath string) (extraction.Dataset, error) {
	raw, err := os.ReadFile(componentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read component file: %w", err)
	}

	block, ok := codegen.ExtractCountriesBlock(string(raw))
	if !ok {
		return nil, fmt.Errorf("countries object not found in %s", componentPath)
	}

	dataset := ParseCountriesBlock(block)
	if len(dataset) == 0 {
		return nil, fmt.Errorf("countries object in %s contains no parseable entries", componentPath)
	}
	return dataset, nil
}
