package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"whoannex/codegen"
	"whoannex/database"
	"whoannex/extraction"
	"whoannex/importer"
	"whoannex/internal/config"
	"whoannex/quality"
)

// Извлекает данные всех стран с приоритетом дезагрегации и пишет
// файл замены плюс отчет по отсутствующим индикаторам.
func main() {
	csvPath := flag.String("csv", "", "path to the annex CSV (default from config)")
	minIndicators := flag.Int("min-indicators", 0, "minimum indicators per country (default from config)")
	noSession := flag.Bool("no-session", false, "do not record this run in the session database")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *csvPath == "" {
		*csvPath = cfg.AnnexCSVPath
	}
	if *minIndicators > 0 {
		cfg.MinIndicators = *minIndicators
	}

	records, err := loadRecords(*csvPath)
	if err != nil {
		log.Fatalf("Failed to parse annex file: %v", err)
	}

	var store *database.SessionStore
	var sessionID string
	if !*noSession {
		if err := os.MkdirAll(filepath.Dir(cfg.SessionDBPath), 0755); err != nil {
			log.Fatalf("Failed to create session database directory: %v", err)
		}
		store, err = database.OpenSessionStore(cfg.SessionDBPath)
		if err != nil {
			log.Fatalf("Failed to open session store: %v", err)
		}
		defer store.Close()
		sessionID, err = store.BeginSession(*csvPath, cfg.MinIndicators)
		if err != nil {
			log.Fatalf("Failed to begin session: %v", err)
		}
	}

	extractor := extraction.NewExtractor(cfg.ExtractionOptions())
	result, err := extractor.Extract(records)
	if err != nil {
		if store != nil {
			store.FailSession(sessionID)
		}
		log.Fatalf("Extraction failed: %v", err)
	}

	fmt.Println("\n=== COMPLETE CSV DATA EXTRACTION REPORT ===")
	fmt.Printf("Countries processed: %d\n", len(result.Dataset))
	fmt.Printf("Total authentic indicators: %d\n", result.Dataset.TotalIndicators())

	totalMissing := 0
	for _, set := range result.Missing {
		totalMissing += len(set)
	}
	fmt.Printf("Total missing indicators: %d\n", totalMissing)
	fmt.Printf("Rows skipped by filters: %d\n", result.SkippedRows)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	replacementPath := filepath.Join(cfg.OutputDir, "complete_authentic_csv_replacement.txt")
	banner := []string{
		"COMPLETE AUTHENTIC WHO STATISTICAL ANNEX DATA",
		"Zero tolerance - only exact CSV values included",
	}
	if err := codegen.WriteReplacementFile(replacementPath, "authenticWHOData", banner, result.Dataset); err != nil {
		log.Fatalf("Failed to write replacement file: %v", err)
	}

	// Проверяем сгенерированный текст до того, как он попадет в компонент
	block := codegen.RenderCountriesBlock(result.Dataset)
	if issues := quality.ValidateGeneratedBlock(block); len(issues) > 0 {
		log.Printf("Generated block has %d issues:", len(issues))
		for _, issue := range issues {
			log.Printf("  %s", issue)
		}
	}

	missingPath := filepath.Join(cfg.OutputDir, "csv_missing_indicators_report.txt")
	if err := codegen.WriteMissingReport(missingPath, result.Dataset, result.Missing); err != nil {
		log.Fatalf("Failed to write missing data report: %v", err)
	}

	if store != nil {
		if err := store.CompleteSession(sessionID, result); err != nil {
			log.Fatalf("Failed to record session: %v", err)
		}
		fmt.Printf("\nRun recorded as session %s\n", sessionID)
	}

	fmt.Println("\nFiles generated:")
	fmt.Printf("- %s\n", replacementPath)
	fmt.Printf("- %s\n", missingPath)

	fmt.Println("\nCountry summary:")
	for _, code := range result.Dataset.CountryCodes() {
		available := len(result.Available[code])
		missing := len(result.Missing[code])
		fmt.Printf("%s: %d authentic, %d missing\n", code, available, missing)
	}
}

// loadRecords выбирает парсер по расширению файла
func loadRecords(path string) ([]importer.AnnexRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return importer.ParseAnnexExcelFile(path)
	}
	return importer.ParseAnnexCSV(path)
}
