package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"whoannex/codegen"
	"whoannex/extraction"
	"whoannex/importer"
	"whoannex/internal/config"
)

// Извлекает все страны с очищенными от диакритики названиями и пишет
// файл замены для компонента.
func main() {
	csvPath := flag.String("csv", "", "path to the annex CSV (default from config)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *csvPath == "" {
		*csvPath = cfg.AnnexCSVPath
	}
	// Очистка названий — смысл этого скрипта, конфигом не отключается
	cfg.SanitizeNames = true

	records, err := loadRecords(*csvPath)
	if err != nil {
		log.Fatalf("Failed to parse annex file: %v", err)
	}

	extractor := extraction.NewExtractor(cfg.ExtractionOptions())
	result, err := extractor.Extract(records)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	fmt.Println("\n=== ALL SANITIZED COUNTRIES CSV DATA EXTRACTION ===")
	fmt.Printf("Countries with substantial data: %d\n", len(result.Dataset))
	fmt.Printf("Total authentic indicators: %d\n", result.Dataset.TotalIndicators())

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	outPath := filepath.Join(cfg.OutputDir, "all_sanitized_countries_replacement.txt")
	banner := []string{
		"ALL SANITIZED COUNTRIES AUTHENTIC WHO STATISTICAL ANNEX DATA",
		"Zero tolerance - only exact CSV values included",
		"Special characters replaced with non-special versions",
	}
	if err := codegen.WriteReplacementFile(outPath, "allSanitizedCountriesWHOData", banner, result.Dataset); err != nil {
		log.Fatalf("Failed to write replacement file: %v", err)
	}

	fmt.Println("\nFiles generated:")
	fmt.Printf("- %s\n", outPath)

	type countryCount struct {
		code  string
		name  string
		count int
	}
	counts := make([]countryCount, 0, len(result.Dataset))
	for code, data := range result.Dataset {
		counts = append(counts, countryCount{code, data.Name, len(data.Indicators)})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].code < counts[j].code
	})

	fmt.Println("\nTop 10 countries by indicator count:")
	for i, c := range counts {
		if i == 10 {
			break
		}
		fmt.Printf("%d. %s (%s): %d indicators\n", i+1, c.code, c.name, c.count)
	}
}

// loadRecords выбирает парсер по расширению файла
func loadRecords(path string) ([]importer.AnnexRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return importer.ParseAnnexExcelFile(path)
	}
	return importer.ParseAnnexCSV(path)
}
