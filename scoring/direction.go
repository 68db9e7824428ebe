package scoring

import (
	"strings"
	"sync"

	"github.com/kljensen/snowball"
)

// EnglishStemmer стеммер английских слов с кешем.
// Названия индикаторов повторяются у всех стран, кеш избавляет от
// повторного стемминга одних и тех же токенов.
type EnglishStemmer struct {
	cache map[string]string
	mu    sync.RWMutex
}

// NewEnglishStemmer создает стеммер английского языка
func NewEnglishStemmer() *EnglishStemmer {
	return &EnglishStemmer{cache: make(map[string]string)}
}

// Stem возвращает основу слова по алгоритму Snowball.
// Пример: "mortality" -> "mortal", "coverage" -> "coverag".
func (s *EnglishStemmer) Stem(word string) string {
	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" {
		return ""
	}

	s.mu.RLock()
	cached, ok := s.cache[normalized]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	stemmed, err := snowball.Stem(normalized, "english", true)
	if err != nil {
		stemmed = normalized
	}

	s.mu.Lock()
	s.cache[normalized] = stemmed
	s.mu.Unlock()

	return stemmed
}

// positiveKeywords признаки индикатора, у которого больше — лучше
var positiveKeywords = []string{
	"coverage", "access", "births", "skilled", "immunization", "expectancy", "density",
}

// negativeKeywords признаки индикатора, у которого больше — хуже
var negativeKeywords = []string{
	"mortality", "death", "disease", "malnutrition", "incidence",
}

// DirectionClassifier определяет направление индикатора по стеммированным
// ключевым словам
type DirectionClassifier struct {
	stemmer  *EnglishStemmer
	positive map[string]bool
	negative map[string]bool
}

// NewDirectionClassifier создает классификатор направления индикаторов
func NewDirectionClassifier() *DirectionClassifier {
	c := &DirectionClassifier{
		stemmer:  NewEnglishStemmer(),
		positive: make(map[string]bool, len(positiveKeywords)),
		negative: make(map[string]bool, len(negativeKeywords)),
	}
	for _, kw := range positiveKeywords {
		c.positive[c.stemmer.Stem(kw)] = true
	}
	for _, kw := range negativeKeywords {
		c.negative[c.stemmer.Stem(kw)] = true
	}
	return c
}

// IsPositive сообщает, считается ли рост значения индикатора улучшением.
// Положительные ключевые слова проверяются первыми; индикатор без
// распознанных ключевых слов считается положительным.
func (c *DirectionClassifier) IsPositive(indicator string) bool {
	tokens := tokenize(indicator)
	for _, token := range tokens {
		if c.positive[c.stemmer.Stem(token)] {
			return true
		}
	}
	for _, token := range tokens {
		if c.negative[c.stemmer.Stem(token)] {
			return false
		}
	}
	return true
}

// tokenize разбивает название индикатора на словесные токены
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}
