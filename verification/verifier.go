package verification

import (
	"math"
	"sort"

	"whoannex/extraction"
)

// matchTolerance допуск при сравнении значений CSV и компонента
const matchTolerance = 0.001

// DefaultCriticalIndicators индикаторы, расхождения по которым считаются
// критическими и выводятся отдельно
var DefaultCriticalIndicators = []string{
	"Life expectancy at birth (years)",
	"Healthy life expectancy at birth (years)",
	"Maternal mortality ratio (per 100 000 live births)",
	"Under-five mortality rate (per 1000 live births)",
	"UHC: Service coverage index",
}

// Discrepancy расхождение значения индикатора между CSV и компонентом
type Discrepancy struct {
	Code        string  `json:"code"`
	CountryName string  `json:"country_name"`
	Indicator   string  `json:"indicator"`
	CSVValue    float64 `json:"csv_value"`
	ImplValue   float64 `json:"impl_value"`
}

// CountrySummary итог сверки по одной стране
type CountrySummary struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Matches         int     `json:"matches"`
	Discrepancies   int     `json:"discrepancies"`
	TotalIndicators int     `json:"total_indicators"`
	Accuracy        float64 `json:"accuracy"`
}

// Result итог системной сверки данных компонента с CSV
type Result struct {
	CSVCountries  int `json:"csv_countries"`
	ImplCountries int `json:"impl_countries"`

	MissingFromImpl []string `json:"missing_from_impl"`
	ExtraInImpl     []string `json:"extra_in_impl"`

	CountriesVerified  int `json:"countries_verified"`
	IndicatorsVerified int `json:"indicators_verified"`
	ExactMatches       int `json:"exact_matches"`
	TotalDiscrepancies int `json:"total_discrepancies"`

	// CountriesWithIssues страны с расхождениями, худшие первыми
	CountriesWithIssues []CountrySummary `json:"countries_with_issues"`

	// CriticalDiscrepancies расхождения по критическим индикаторам
	CriticalDiscrepancies []Discrepancy `json:"critical_discrepancies"`

	// Accuracy доля точных совпадений в процентах
	Accuracy float64 `json:"accuracy"`
}

// Verify сверяет набор данных компонента с набором, построенным из CSV.
// Сравниваются только индикаторы, присутствующие в CSV: значение компонента
// считается совпавшим, если отличается меньше чем на matchTolerance.
func Verify(csvData, implData extraction.Dataset, criticalIndicators []string) *Result {
	result := &Result{
		CSVCountries:  len(csvData),
		ImplCountries: len(implData),
	}

	critical := make(map[string]bool, len(criticalIndicators))
	for _, indicator := range criticalIndicators {
		critical[indicator] = true
	}

	for code := range csvData {
		if _, ok := implData[code]; !ok {
			result.MissingFromImpl = append(result.MissingFromImpl, code)
		}
	}
	for code := range implData {
		if _, ok := csvData[code]; !ok {
			result.ExtraInImpl = append(result.ExtraInImpl, code)
		}
	}
	sort.Strings(result.MissingFromImpl)
	sort.Strings(result.ExtraInImpl)

	var common []string
	for code := range csvData {
		if _, ok := implData[code]; ok {
			common = append(common, code)
		}
	}
	sort.Strings(common)

	for _, code := range common {
		csvCountry := csvData[code]
		implCountry := implData[code]

		matches := 0
		discrepancies := 0

		for indicator, csvValue := range csvCountry.Indicators {
			implValue, ok := implCountry.Indicators[indicator]
			if !ok {
				continue
			}
			if math.Abs(csvValue-implValue) < matchTolerance {
				matches++
				continue
			}
			discrepancies++
			if critical[indicator] {
				result.CriticalDiscrepancies = append(result.CriticalDiscrepancies, Discrepancy{
					Code:        code,
					CountryName: csvCountry.Name,
					Indicator:   indicator,
					CSVValue:    csvValue,
					ImplValue:   implValue,
				})
			}
		}

		result.CountriesVerified++
		result.IndicatorsVerified += len(csvCountry.Indicators)
		result.ExactMatches += matches
		result.TotalDiscrepancies += discrepancies

		if discrepancies > 0 {
			total := len(csvCountry.Indicators)
			result.CountriesWithIssues = append(result.CountriesWithIssues, CountrySummary{
				Code:            code,
				Name:            csvCountry.Name,
				Matches:         matches,
				Discrepancies:   discrepancies,
				TotalIndicators: total,
				Accuracy:        float64(matches) / float64(total) * 100,
			})
		}
	}

	sort.Slice(result.CountriesWithIssues, func(i, j int) bool {
		a, b := result.CountriesWithIssues[i], result.CountriesWithIssues[j]
		if a.Discrepancies != b.Discrepancies {
			return a.Discrepancies > b.Discrepancies
		}
		return a.Code < b.Code
	})

	if result.IndicatorsVerified > 0 {
		result.Accuracy = float64(result.ExactMatches) / float64(result.IndicatorsVerified) * 100
	}

	return result
}

// Clean сообщает, что расхождений и лишних/недостающих стран нет
func (r *Result) Clean() bool {
	return r.TotalDiscrepancies == 0 && len(r.MissingFromImpl) == 0 && len(r.ExtraInImpl) == 0
}
