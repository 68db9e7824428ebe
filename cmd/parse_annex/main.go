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

// Разбирает CSV статистического приложения, печатает сводку и генерирует
// полный JS-модуль с данными стран.
func main() {
	csvPath := flag.String("csv", "", "path to the annex CSV (default from config)")
	outPath := flag.String("out", "who_data_replacement.js", "output JS module path")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *csvPath == "" {
		*csvPath = cfg.AnnexCSVPath
	}

	records, err := loadRecords(*csvPath)
	if err != nil {
		log.Fatalf("Failed to parse annex file: %v", err)
	}

	extractor := extraction.NewExtractor(cfg.ExtractionOptions())
	result, err := extractor.Extract(records)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	fmt.Println("WHO Data Processing Complete")
	fmt.Printf("Found %d countries\n", len(result.Dataset))
	fmt.Printf("Found %d unique indicators\n", len(result.AllIndicators))
	fmt.Println()

	// Контрольная страна для ручной сверки
	if usa, ok := result.Dataset["USA"]; ok {
		fmt.Println("United States indicators found:")
		names := make([]string, 0, len(usa.Indicators))
		for indicator := range usa.Indicators {
			names = append(names, indicator)
		}
		sort.Strings(names)
		for _, indicator := range names {
			fmt.Printf("  %s: %v\n", indicator, usa.Indicators[indicator])
		}
		fmt.Println()
	}

	module := codegen.RenderAuthenticModule(result.Dataset, result.AllIndicators)
	if err := os.WriteFile(*outPath, []byte(module), 0644); err != nil {
		log.Fatalf("Failed to write JS module: %v", err)
	}

	fmt.Printf("JavaScript replacement code generated in '%s'\n", *outPath)
}

// loadRecords выбирает парсер по расширению файла
func loadRecords(path string) ([]importer.AnnexRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return importer.ParseAnnexExcelFile(path)
	}
	return importer.ParseAnnexCSV(path)
}
