package scoring

import (
	"sort"

	"whoannex/extraction"
)

// Калибровка сырых баллов: наблюдаемый диапазон по реальным данным ВОЗ
// растягивается на шкалу 0-100, иначе все страны сбиваются в середину.
const (
	observedMin = 25.0
	observedMax = 66.0
)

// Score балл здоровья одной страны
type Score struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	RawScore        float64 `json:"raw_score"`
	CalibratedScore float64 `json:"calibrated_score"`
	ValidIndicators int     `json:"valid_indicators"`
}

// ColorBand цветовая категория карты
type ColorBand struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Count int     `json:"count"`
}

// Calculator вычисляет баллы здоровья так же, как это делает фронтенд,
// чтобы проверять распределение до обновления компонента
type Calculator struct {
	directions *DirectionClassifier
}

// NewCalculator создает калькулятор баллов
func NewCalculator() *Calculator {
	return &Calculator{directions: NewDirectionClassifier()}
}

// ComputeScores считает калиброванные баллы для всех стран набора данных.
// Каждый индикатор нормализуется min-max по всем странам, направление
// учитывается инверсией; балл — равновзвешенная сумма с поправкой на
// отсутствующие индикаторы.
func (c *Calculator) ComputeScores(dataset extraction.Dataset) []Score {
	indicatorSet := make(map[string]bool)
	for _, country := range dataset {
		for indicator := range country.Indicators {
			indicatorSet[indicator] = true
		}
	}
	allIndicators := make([]string, 0, len(indicatorSet))
	for indicator := range indicatorSet {
		allIndicators = append(allIndicators, indicator)
	}
	sort.Strings(allIndicators)

	if len(allIndicators) == 0 {
		return nil
	}

	// Значения каждого индикатора по всем странам
	valuesByIndicator := make(map[string][]float64, len(allIndicators))
	for _, indicator := range allIndicators {
		for _, country := range dataset {
			if v, ok := country.Indicators[indicator]; ok {
				valuesByIndicator[indicator] = append(valuesByIndicator[indicator], v)
			}
		}
	}

	weight := 1.0 / float64(len(allIndicators))
	scores := make([]Score, 0, len(dataset))

	for _, code := range dataset.CountryCodes() {
		country := dataset[code]
		totalScore := 0.0
		validIndicators := 0

		for _, indicator := range allIndicators {
			value, ok := country.Indicators[indicator]
			if !ok {
				continue
			}
			allValues := valuesByIndicator[indicator]
			if len(allValues) < 2 {
				continue
			}
			normalized := normalizeValue(allValues, value, c.directions.IsPositive(indicator))
			totalScore += normalized * weight
			validIndicators++
		}

		if validIndicators == 0 {
			continue
		}

		adjustment := float64(len(allIndicators)) / float64(validIndicators)
		rawScore := totalScore * 100 * adjustment
		scores = append(scores, Score{
			Code:            code,
			Name:            country.Name,
			RawScore:        rawScore,
			CalibratedScore: calibrate(rawScore),
			ValidIndicators: validIndicators,
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].CalibratedScore != scores[j].CalibratedScore {
			return scores[i].CalibratedScore > scores[j].CalibratedScore
		}
		return scores[i].Code < scores[j].Code
	})

	return scores
}

// normalizeValue нормализует значение min-max по всем странам.
// Для отрицательных индикаторов шкала инвертируется; при совпадающих
// min и max возвращается 0.5.
func normalizeValue(allValues []float64, value float64, isPositive bool) float64 {
	minVal, maxVal := allValues[0], allValues[0]
	for _, v := range allValues[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		return 0.5
	}
	if isPositive {
		return (value - minVal) / (maxVal - minVal)
	}
	return (maxVal - value) / (maxVal - minVal)
}

// calibrate растягивает сырой балл из наблюдаемого диапазона на 0-100
func calibrate(rawScore float64) float64 {
	calibrated := (rawScore - observedMin) / (observedMax - observedMin) * 100
	if calibrated < 0 {
		return 0
	}
	if calibrated > 100 {
		return 100
	}
	return calibrated
}

// ColorDistribution раскладывает баллы по цветовым категориям карты
func ColorDistribution(scores []Score) []ColorBand {
	bands := []ColorBand{
		{Label: "Dark Green (80-100)", Min: 80},
		{Label: "Green (60-79)", Min: 60},
		{Label: "Amber (40-59)", Min: 40},
		{Label: "Red (20-39)", Min: 20},
		{Label: "Dark Red (0-19)", Min: 0},
	}
	for _, score := range scores {
		for i := range bands {
			if score.CalibratedScore >= bands[i].Min {
				bands[i].Count++
				break
			}
		}
	}
	return bands
}

// ScoreRange возвращает минимальный и максимальный калиброванные баллы
func ScoreRange(scores []Score) (min, max float64) {
	if len(scores) == 0 {
		return 0, 0
	}
	min, max = scores[0].CalibratedScore, scores[0].CalibratedScore
	for _, s := range scores[1:] {
		if s.CalibratedScore < min {
			min = s.CalibratedScore
		}
		if s.CalibratedScore > max {
			max = s.CalibratedScore
		}
	}
	return min, max
}

// NarrowRange предупреждение: разброс баллов меньше 30 пунктов означает,
// что калибровку надо пересматривать
func NarrowRange(scores []Score) bool {
	min, max := ScoreRange(scores)
	return max-min < 30
}
