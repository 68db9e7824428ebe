package extraction

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whoannex/importer"
)

// rec собирает запись с минимально нужными полями
func rec(indicator, location, code, disaggregation, value string) importer.AnnexRecord {
	return importer.AnnexRecord{
		IndicatorName:  indicator,
		Location:       location,
		LocationCode:   code,
		Disaggregation: disaggregation,
		NumericValue:   value,
	}
}

func TestExtract_DisaggregationPriority(t *testing.T) {
	// Агрегат NA должен победить независимо от порядка строк
	records := []importer.AnnexRecord{
		rec("Life expectancy at birth (years)", "France", "FRA", "SEX_MLE", "79.2"),
		rec("Life expectancy at birth (years)", "France", "FRA", "BTSX", "82.1"),
		rec("Life expectancy at birth (years)", "France", "FRA", "NA", "82.5"),
		rec("Life expectancy at birth (years)", "France", "FRA", "SEX_FMLE", "85.7"),
	}

	extractor := NewExtractor(Options{MinIndicators: 1})
	result, err := extractor.Extract(records)
	require.NoError(t, err)

	country := result.Dataset["FRA"]
	require.NotNil(t, country)
	assert.Equal(t, 82.5, country.Indicators["Life expectancy at birth (years)"])
	assert.Equal(t, "NA", result.WinningDisaggregation["FRA"]["Life expectancy at birth (years)"])
}

func TestExtract_PrioritySubstringMatch(t *testing.T) {
	// SEX_BTSX содержит BTSX и потому получает ранг BTSX — как в первых
	// версиях скриптов, сверявшихся с этой выгрузкой
	records := []importer.AnnexRecord{
		rec("Suicide mortality rate (per 100 000 population)", "France", "FRA", "TOTAL", "13.1"),
		rec("Suicide mortality rate (per 100 000 population)", "France", "FRA", "SEX_BTSX", "13.8"),
	}

	extractor := NewExtractor(Options{MinIndicators: 1})
	result, err := extractor.Extract(records)
	require.NoError(t, err)
	assert.Equal(t, 13.8, result.Dataset["FRA"].Indicators["Suicide mortality rate (per 100 000 population)"])
}

func TestExtract_EqualPriorityKeepsFirst(t *testing.T) {
	records := []importer.AnnexRecord{
		rec("UHC: Service coverage index", "France", "FRA", "NA", "80"),
		rec("UHC: Service coverage index", "France", "FRA", "NA", "81"),
	}

	extractor := NewExtractor(Options{MinIndicators: 1})
	result, err := extractor.Extract(records)
	require.NoError(t, err)
	assert.Equal(t, 80.0, result.Dataset["FRA"].Indicators["UHC: Service coverage index"])
}

func TestExtract_EmptyBeatsUnlisted(t *testing.T) {
	// Пустая метка стоит в списке приоритетов, неизвестная — нет
	records := []importer.AnnexRecord{
		rec("Tuberculosis incidence (per 100 000 population)", "France", "FRA", "AGEGROUP_1524", "4.1"),
		rec("Tuberculosis incidence (per 100 000 population)", "France", "FRA", "", "8.2"),
	}

	extractor := NewExtractor(Options{MinIndicators: 1})
	result, err := extractor.Extract(records)
	require.NoError(t, err)
	assert.Equal(t, 8.2, result.Dataset["FRA"].Indicators["Tuberculosis incidence (per 100 000 population)"])
}

func TestExtract_RegionalAggregatesSkipped(t *testing.T) {
	records := []importer.AnnexRecord{
		rec("Life expectancy at birth (years)", "Global", "GLOBAL", "NA", "73.3"),
		rec("Life expectancy at birth (years)", "African Region", "AFR", "NA", "64.5"),
		rec("Life expectancy at birth (years)", "European Region", "EUR", "NA", "77.2"),
		rec("Life expectancy at birth (years)", "France", "FRA", "NA", "82.5"),
	}

	extractor := NewExtractor(Options{MinIndicators: 1})
	result, err := extractor.Extract(records)
	require.NoError(t, err)

	assert.Len(t, result.Dataset, 1)
	assert.Contains(t, result.Dataset, "FRA")
	assert.Equal(t, 3, result.SkippedRows)
}

func TestExtract_InvalidLocationCodes(t *testing.T) {
	records := []importer.AnnexRecord{
		rec("Life expectancy at birth (years)", "Somewhere", "FR", "NA", "80"),
		rec("Life expectancy at birth (years)", "Somewhere", "FRAN", "NA", "80"),
		rec("Life expectancy at birth (years)", "Somewhere", "FR1", "NA", "80"),
		rec("Life expectancy at birth (years)", "Somewhere", "", "NA", "80"),
		rec("Life expectancy at birth (years)", "France", "FRA", "NA", "82.5"),
	}

	extractor := NewExtractor(Options{MinIndicators: 1})
	result, err := extractor.Extract(records)
	require.NoError(t, err)

	assert.Len(t, result.Dataset, 1)
	assert.Equal(t, 4, result.SkippedRows)
}

func TestExtract_ValueAcceptance(t *testing.T) {
	records := []importer.AnnexRecord{
		rec("A", "France", "FRA", "NA", ""),
		rec("B", "France", "FRA", "NA", "NO DATA"),
		rec("C", "France", "FRA", "NA", "nan"),
		rec("D", "France", "FRA", "NA", "abc"),
		rec("E", "France", "FRA", "NA", "42.5"),
	}

	extractor := NewExtractor(Options{MinIndicators: 1})
	result, err := extractor.Extract(records)
	require.NoError(t, err)

	country := result.Dataset["FRA"]
	require.NotNil(t, country)
	assert.Len(t, country.Indicators, 1)
	assert.Equal(t, 42.5, country.Indicators["E"])

	// Отклоненные индикаторы учтены как отсутствующие
	missing := result.Missing["FRA"]
	assert.Len(t, missing, 4)
	assert.True(t, missing["A"])
	assert.True(t, missing["D"])
}

func TestExtract_MinIndicatorsThreshold(t *testing.T) {
	var records []importer.AnnexRecord
	for i := 0; i < 12; i++ {
		records = append(records, rec(fmt.Sprintf("Indicator %02d", i), "France", "FRA", "NA", "1"))
	}
	for i := 0; i < 5; i++ {
		records = append(records, rec(fmt.Sprintf("Indicator %02d", i), "Chad", "TCD", "NA", "1"))
	}

	extractor := NewExtractor(Options{MinIndicators: 10})
	result, err := extractor.Extract(records)
	require.NoError(t, err)

	assert.Contains(t, result.Dataset, "FRA")
	assert.NotContains(t, result.Dataset, "TCD")

	// Порог — настраиваемый параметр, а не отдельное поведение
	extractor = NewExtractor(Options{MinIndicators: 5})
	result, err = extractor.Extract(records)
	require.NoError(t, err)
	assert.Contains(t, result.Dataset, "TCD")
}

func TestExtract_TargetCountries(t *testing.T) {
	records := []importer.AnnexRecord{
		rec("Life expectancy at birth (years)", "France", "FRA", "NA", "82.5"),
		rec("Life expectancy at birth (years)", "Chad", "TCD", "NA", "52.5"),
	}

	extractor := NewExtractor(Options{
		MinIndicators:   1,
		TargetCountries: BuildTargetSet([]string{"FRA"}),
	})
	result, err := extractor.Extract(records)
	require.NoError(t, err)

	assert.Len(t, result.Dataset, 1)
	assert.Contains(t, result.Dataset, "FRA")
}

func TestExtract_SanitizeNames(t *testing.T) {
	records := []importer.AnnexRecord{
		rec("Life expectancy at birth (years)", "Côte d’Ivoire", "CIV", "NA", "58.9"),
	}

	extractor := NewExtractor(Options{MinIndicators: 1, SanitizeNames: true})
	result, err := extractor.Extract(records)
	require.NoError(t, err)
	assert.Equal(t, "Cote d'Ivoire", result.Dataset["CIV"].Name)

	extractor = NewExtractor(Options{MinIndicators: 1})
	result, err = extractor.Extract(records)
	require.NoError(t, err)
	assert.Equal(t, "Côte d’Ivoire", result.Dataset["CIV"].Name)
}

func TestExtract_VariantSpellingResolvesCode(t *testing.T) {
	// Справочник названий приводит вариантные написания к каноническому
	// коду, даже когда код в самой выгрузке пуст или расходится
	records := []importer.AnnexRecord{
		rec("Life expectancy at birth (years)", "Türkiye", "TUR", "NA", "78.6"),
		rec("Life expectancy at birth (years)", "Russia", "", "NA", "73.2"),
		rec("Life expectancy at birth (years)", "United States", "US", "NA", "76.4"),
		rec("UHC: Service coverage index", "France", "FRX", "NA", "80"),
	}

	extractor := NewExtractor(Options{MinIndicators: 1})
	result, err := extractor.Extract(records)
	require.NoError(t, err)

	assert.Contains(t, result.Dataset, "TUR")
	assert.Contains(t, result.Dataset, "RUS")
	assert.Contains(t, result.Dataset, "USA")
	assert.Contains(t, result.Dataset, "FRA")
	assert.NotContains(t, result.Dataset, "FRX")
	assert.Equal(t, 73.2, result.Dataset["RUS"].Indicators["Life expectancy at birth (years)"])
	assert.Equal(t, 0, result.SkippedRows)
}

func TestExtract_AllIndicatorsSorted(t *testing.T) {
	records := []importer.AnnexRecord{
		rec("Zebra indicator", "France", "FRA", "NA", "1"),
		rec("Alpha indicator", "France", "FRA", "NA", "2"),
	}

	extractor := NewExtractor(Options{MinIndicators: 1})
	result, err := extractor.Extract(records)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha indicator", "Zebra indicator"}, result.AllIndicators)
}

func TestExtract_NoRecords(t *testing.T) {
	extractor := NewExtractor(Options{})
	_, err := extractor.Extract(nil)
	assert.Error(t, err)
}

func TestAcceptNumericValue(t *testing.T) {
	cases := []struct {
		raw   string
		want  float64
		valid bool
	}{
		{"82.5", 82.5, true},
		{" 8 ", 8, true},
		{"-0.5", -0.5, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"NO DATA", 0, false},
		{"nan", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, ok := AcceptNumericValue(tc.raw)
		assert.Equal(t, tc.valid, ok, "raw=%q", tc.raw)
		if tc.valid {
			assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
		}
	}
}

func TestResolveLocationCode(t *testing.T) {
	cases := []struct {
		location string
		code     string
		found    bool
	}{
		{"France", "FRA", true},
		{"USA", "USA", true},
		{"United States of America", "USA", true},
		{"Türkiye", "TUR", true},
		{"Russia", "RUS", true},
		{"Atlantis", "", false},
	}
	for _, tc := range cases {
		code, ok := ResolveLocationCode(tc.location)
		assert.Equal(t, tc.found, ok, "location=%q", tc.location)
		if tc.found {
			assert.Equal(t, tc.code, code, "location=%q", tc.location)
		}
	}
}

func TestIsCountryCode(t *testing.T) {
	assert.True(t, IsCountryCode("FRA"))
	assert.True(t, IsCountryCode("usa"))
	assert.False(t, IsCountryCode("FR"))
	assert.False(t, IsCountryCode("FRAN"))
	assert.False(t, IsCountryCode("FR1"))
	assert.False(t, IsCountryCode(""))
}
