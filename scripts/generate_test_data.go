package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// annexHeader заголовок CSV в порядке колонок выгрузки ВОЗ
const annexHeader = "IndicatorName,IndicatorCode,Location,LocationCode,Year,Disaggregation,NumericValue,DisplayValue,Comments"

// sampleIndicators реальные названия индикаторов с типовыми диапазонами значений
var sampleIndicators = []struct {
	name string
	code string
	min  float64
	max  float64
}{
	{"Life expectancy at birth (years)", "WHOSIS_000001", 50, 85},
	{"Healthy life expectancy at birth (years)", "WHOSIS_000002", 45, 75},
	{"Maternal mortality ratio (per 100 000 live births)", "MDG_0000000026", 2, 1200},
	{"Under-five mortality rate (per 1000 live births)", "MDG_0000000007", 2, 120},
	{"Neonatal mortality rate (per 1000 live births)", "WHOSIS_000003", 1, 45},
	{"UHC: Service coverage index", "UHC_INDEX_REPORTED", 25, 90},
	{"Suicide mortality rate (per 100 000 population)", "SDGSUICIDE", 2, 35},
	{"Road traffic mortality rate (per 100 000 population)", "RS_198", 2, 40},
	{"Tuberculosis incidence (per 100 000 population)", "MDG_0000000020", 5, 650},
	{"Density of medical doctors (per 10 000 population)", "HWF_0001", 0.5, 60},
	{"Proportion of births attended by skilled health personnel (%)", "MDG_0000000025", 20, 100},
	{"Life expectancy at birth (years) male", "WHOSIS_000001M", 48, 82},
}

// disaggregations метки дезагрегации в пропорциях, близких к реальной выгрузке
var disaggregations = []string{"NA", "BTSX", "SEX_BTSX", "SEX_MLE", "SEX_FMLE", "TOTAL", "ALL", ""}

// regionalRows строки региональных агрегатов, которые экстрактор должен отбросить
var regionalRows = []struct {
	location string
	code     string
}{
	{"Global", "GLOBAL"},
	{"African Region", "AFR"},
	{"European Region", "EUR"},
	{"Region of the Americas", "AMR"},
}

// Генерирует синтетическую выгрузку статистического приложения для тестов:
// валидные страны, региональные агрегаты, пустые значения и маркеры NO DATA
// в реалистичных пропорциях.
func main() {
	gofakeit.Seed(0)
	rng := rand.New(rand.NewSource(0))

	sizes := []struct {
		name      string
		countries int
	}{
		{"small", 12},
		{"medium", 60},
		{"full", 196},
	}

	dataDir := filepath.Join("tests", "fixtures")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	for _, size := range sizes {
		fmt.Printf("Generating %s fixture (%d countries)...\n", size.name, size.countries)

		var b strings.Builder
		b.WriteString(annexHeader + "\n")
		rows := 0

		for i := 0; i < size.countries; i++ {
			country := gofakeit.Country()
			code := strings.ToUpper(gofakeit.LetterN(3))

			for _, indicator := range sampleIndicators {
				// Часть индикаторов у страны отсутствует
				if rng.Float64() < 0.15 {
					continue
				}

				disaggregation := disaggregations[rng.Intn(len(disaggregations))]
				value := indicator.min + rng.Float64()*(indicator.max-indicator.min)

				numeric := fmt.Sprintf("%.1f", value)
				display := numeric
				switch {
				case rng.Float64() < 0.05:
					numeric = ""
					display = ""
				case rng.Float64() < 0.05:
					numeric = "NO DATA"
					display = "NO DATA"
				}

				b.WriteString(csvRow(indicator.name, indicator.code, country, code,
					"2021", disaggregation, numeric, display, ""))
				rows++
			}
		}

		// Региональные агрегаты вперемешку с данными стран
		for _, region := range regionalRows {
			for _, indicator := range sampleIndicators[:4] {
				value := indicator.min + rng.Float64()*(indicator.max-indicator.min)
				b.WriteString(csvRow(indicator.name, indicator.code, region.location, region.code,
					"2021", "NA", fmt.Sprintf("%.1f", value), "", ""))
				rows++
			}
		}

		path := filepath.Join(dataDir, fmt.Sprintf("annex_%s.csv", size.name))
		if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
			log.Fatalf("Failed to write fixture: %v", err)
		}
		fmt.Printf("  %s: %d rows\n", path, rows)
	}
}

// csvRow собирает строку CSV, заключая поля с запятыми в кавычки
func csvRow(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		if strings.ContainsAny(field, ",\"") {
			quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		} else {
			quoted[i] = field
		}
	}
	return strings.Join(quoted, ",") + "\n"
}
