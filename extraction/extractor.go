package extraction

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"whoannex/importer"
	"whoannex/normalization"
)

// CountryData данные одной страны: название и значения индикаторов
type CountryData struct {
	Name       string
	Indicators map[string]float64
}

// Dataset набор данных по странам, ключ — код ISO3
type Dataset map[string]*CountryData

// DefaultPriorityOrder приоритет меток дезагрегации (от высшего к низшему).
// Значение с меткой из начала списка побеждает все последующие.
var DefaultPriorityOrder = []string{
	"NA",       // Основной агрегат
	"BTSX",     // Оба пола
	"SEX_BTSX", // Оба пола, явная форма
	"TOTAL",    // Итоговый агрегат
	"ALL",      // Все категории
	"",         // Пустая дезагрегация
}

// regionalLocations названия региональных агрегатов ВОЗ, исключаемые из выборки
var regionalLocations = map[string]bool{
	"Global":                       true,
	"African Region":               true,
	"Eastern Mediterranean Region": true,
	"European Region":              true,
	"Region of the Americas":       true,
	"South-East Asia Region":       true,
	"Western Pacific Region":       true,
}

// regionalCodes коды региональных агрегатов ВОЗ
var regionalCodes = map[string]bool{
	"AFR":    true,
	"AMR":    true,
	"EMR":    true,
	"EUR":    true,
	"SEAR":   true,
	"WPR":    true,
	"GLOBAL": true,
}

// Options параметры извлечения данных
type Options struct {
	// Минимальное число индикаторов, при котором страна попадает в выборку.
	// Исторически скрипты использовали 10, 15 и 30 — значение настраиваемое.
	MinIndicators int

	// Приоритет меток дезагрегации; пустой срез означает DefaultPriorityOrder
	PriorityOrder []string

	// Заменять диакритические знаки в названиях стран
	SanitizeNames bool

	// Ограничить выборку явным набором кодов ISO3; пустая карта — все страны
	TargetCountries map[string]bool
}

// Result результат извлечения
type Result struct {
	Dataset Dataset

	// Available индикаторы с принятым значением по каждой стране
	Available map[string]map[string]bool

	// Missing индикаторы, встреченные в CSV, но отклоненные (пусто, NO DATA, не число)
	Missing map[string]map[string]bool

	// WinningDisaggregation метка дезагрегации победившей записи по (код, индикатор)
	WinningDisaggregation map[string]map[string]string

	// AllIndicators все названия индикаторов, встреченные у стран
	AllIndicators []string

	// SkippedRows строки, отброшенные фильтрами (регионы, невалидные коды)
	SkippedRows int
}

// candidate запись-претендент на значение (код, индикатор)
type candidate struct {
	value          float64
	priority       int
	disaggregation string
	location       string
}

// Extractor извлекает данные стран из записей статистического приложения
type Extractor struct {
	opts Options
}

// NewExtractor создает экстрактор с заданными параметрами
func NewExtractor(opts Options) *Extractor {
	if len(opts.PriorityOrder) == 0 {
		opts.PriorityOrder = DefaultPriorityOrder
	}
	if opts.MinIndicators < 0 {
		opts.MinIndicators = 0
	}
	return &Extractor{opts: opts}
}

// Extract строит набор данных по странам из записей CSV.
// Код страны берется из справочника названий; если название неизвестно,
// используется код из самой выгрузки. Для каждой пары (код страны, индикатор)
// выбирается запись с наивысшим приоритетом дезагрегации; при равном
// приоритете побеждает первая по порядку.
func (e *Extractor) Extract(records []importer.AnnexRecord) (*Result, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records to extract")
	}

	best := make(map[string]map[string]*candidate)
	available := make(map[string]map[string]bool)
	missing := make(map[string]map[string]bool)
	indicatorSet := make(map[string]bool)
	skipped := 0

	for _, rec := range records {
		if IsRegionalAggregate(rec.Location, rec.LocationCode) {
			skipped++
			continue
		}
		// Справочник названий важнее кода из выгрузки: вариантные
		// написания ("Türkiye", "Russia") приводятся к каноническому коду
		code, known := ResolveLocationCode(rec.Location)
		if !known {
			code = rec.LocationCode
		}
		if !IsCountryCode(code) {
			skipped++
			continue
		}
		if len(e.opts.TargetCountries) > 0 && !e.opts.TargetCountries[code] {
			skipped++
			continue
		}

		value, ok := AcceptNumericValue(rec.NumericValue)
		if !ok {
			markIndicator(missing, code, rec.IndicatorName)
			continue
		}

		score := priorityScore(rec.Disaggregation, e.opts.PriorityOrder)

		byIndicator := best[code]
		if byIndicator == nil {
			byIndicator = make(map[string]*candidate)
			best[code] = byIndicator
		}
		existing := byIndicator[rec.IndicatorName]
		if existing == nil || score < existing.priority {
			byIndicator[rec.IndicatorName] = &candidate{
				value:          value,
				priority:       score,
				disaggregation: rec.Disaggregation,
				location:       rec.Location,
			}
		}
		markIndicator(available, code, rec.IndicatorName)
		indicatorSet[rec.IndicatorName] = true
	}

	dataset := make(Dataset)
	winning := make(map[string]map[string]string)
	for code, byIndicator := range best {
		if len(byIndicator) < e.opts.MinIndicators {
			continue
		}
		name := ""
		indicators := make(map[string]float64, len(byIndicator))
		labels := make(map[string]string, len(byIndicator))
		for indicator, cand := range byIndicator {
			if name == "" {
				name = cand.location
			}
			indicators[indicator] = cand.value
			labels[indicator] = cand.disaggregation
		}
		if e.opts.SanitizeNames {
			name = normalization.SanitizeCountryName(name)
		}
		dataset[code] = &CountryData{Name: name, Indicators: indicators}
		winning[code] = labels
	}

	indicators := make([]string, 0, len(indicatorSet))
	for ind := range indicatorSet {
		indicators = append(indicators, ind)
	}
	sort.Strings(indicators)

	return &Result{
		Dataset:               dataset,
		Available:             available,
		Missing:               missing,
		WinningDisaggregation: winning,
		AllIndicators:         indicators,
		SkippedRows:           skipped,
	}, nil
}

// IsRegionalAggregate проверяет, что запись относится к региональному агрегату
func IsRegionalAggregate(location, locationCode string) bool {
	return regionalLocations[location] || regionalCodes[locationCode]
}

// IsCountryCode проверяет, что код — ровно три латинские буквы
func IsCountryCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// AcceptNumericValue принимает сырое значение из CSV.
// Отклоняются пустые строки, маркеры "NO DATA"/"nan" и все, что не парсится
// в конечное число.
func AcceptNumericValue(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "NO DATA" {
		return 0, false
	}
	if strings.EqualFold(trimmed, "nan") {
		return 0, false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// priorityScore вычисляет ранг метки дезагрегации по списку приоритетов.
// Метка сопоставляется по вхождению или точному совпадению; первая подошедшая
// позиция выигрывает. Метки вне списка получают ранг len(order).
func priorityScore(disaggregation string, order []string) int {
	for i, pattern := range order {
		if pattern == "" {
			if disaggregation == "" {
				return i
			}
			continue
		}
		if strings.Contains(disaggregation, pattern) || disaggregation == pattern {
			return i
		}
	}
	return len(order)
}

// markIndicator отмечает индикатор во вложенной карте по коду страны
func markIndicator(m map[string]map[string]bool, code, indicator string) {
	set := m[code]
	if set == nil {
		set = make(map[string]bool)
		m[code] = set
	}
	set[indicator] = true
}

// CountryCodes возвращает отсортированные коды стран набора данных
func (d Dataset) CountryCodes() []string {
	codes := make([]string, 0, len(d))
	for code := range d {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// TotalIndicators суммарное число значений индикаторов по всем странам
func (d Dataset) TotalIndicators() int {
	total := 0
	for _, c := range d {
		total += len(c.Indicators)
	}
	return total
}
