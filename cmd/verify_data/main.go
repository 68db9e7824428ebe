package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"whoannex/extraction"
	"whoannex/importer"
	"whoannex/internal/config"
	"whoannex/verification"
)

// Системная сверка: данные компонента сверяются с CSV по всем странам
// и индикаторам, расхождения выводятся и сохраняются в JSON-отчет.
func main() {
	csvPath := flag.String("csv", "", "path to the annex CSV (default from config)")
	componentPath := flag.String("component", "", "path to the map component (default from config)")
	reportPath := flag.String("report", "", "write a JSON report to this path")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *csvPath == "" {
		*csvPath = cfg.AnnexCSVPath
	}
	if *componentPath == "" {
		*componentPath = cfg.ComponentPath
	}

	fmt.Println("=== SYSTEM-WIDE WHO DATA VERIFICATION ===")
	fmt.Println()
	fmt.Println("Extracting CSV data with proper disaggregation priority...")

	records, err := loadRecords(*csvPath)
	if err != nil {
		log.Fatalf("Failed to parse annex file: %v", err)
	}
	extractor := extraction.NewExtractor(cfg.ExtractionOptions())
	extracted, err := extractor.Extract(records)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	fmt.Println("Extracting implementation data...")
	implData, err := verification.ParseComponentFile(*componentPath)
	if err != nil {
		log.Fatalf("Failed to parse component: %v", err)
	}

	result := verification.Verify(extracted.Dataset, implData, cfg.CriticalIndicators)

	fmt.Printf("\nCSV countries: %d\n", result.CSVCountries)
	fmt.Printf("Implementation countries: %d\n", result.ImplCountries)

	if len(result.MissingFromImpl) > 0 {
		fmt.Printf("\nCountries in CSV but missing from implementation: %d\n", len(result.MissingFromImpl))
		for i, code := range result.MissingFromImpl {
			if i == 10 {
				fmt.Printf("  ... and %d more\n", len(result.MissingFromImpl)-10)
				break
			}
			fmt.Printf("  - %s: %s\n", code, extracted.Dataset[code].Name)
		}
	}
	if len(result.ExtraInImpl) > 0 {
		fmt.Printf("\nCountries in implementation but not in CSV: %d\n", len(result.ExtraInImpl))
		for i, code := range result.ExtraInImpl {
			if i == 10 {
				fmt.Printf("  ... and %d more\n", len(result.ExtraInImpl)-10)
				break
			}
			fmt.Printf("  - %s: %s\n", code, implData[code].Name)
		}
	}

	fmt.Printf("\n=== VERIFYING %d COMMON COUNTRIES ===\n", result.CountriesVerified)

	if len(result.CriticalDiscrepancies) > 0 {
		fmt.Println("\n=== CRITICAL INDICATOR DISCREPANCIES ===")
		for i, issue := range result.CriticalDiscrepancies {
			if i == 20 {
				fmt.Printf("... and %d more\n", len(result.CriticalDiscrepancies)-20)
				break
			}
			fmt.Printf("%s (%s) - %s:\n", issue.Code, issue.CountryName, issue.Indicator)
			fmt.Printf("  CSV: %v\n", issue.CSVValue)
			fmt.Printf("  Implementation: %v\n", issue.ImplValue)
			fmt.Println()
		}
	}

	if len(result.CountriesWithIssues) > 0 {
		fmt.Println("\n=== COUNTRIES WITH DISCREPANCIES ===")
		for i, country := range result.CountriesWithIssues {
			if i == 10 {
				break
			}
			fmt.Printf("%s (%s): %d discrepancies, %.1f%% accurate\n",
				country.Code, country.Name, country.Discrepancies, country.Accuracy)
		}
	}

	fmt.Println("\n=== SYSTEM-WIDE VERIFICATION SUMMARY ===")
	fmt.Printf("Countries verified: %d\n", result.CountriesVerified)
	fmt.Printf("Total indicators verified: %d\n", result.IndicatorsVerified)
	fmt.Printf("Exact matches: %d\n", result.ExactMatches)
	fmt.Printf("Total discrepancies: %d\n", result.TotalDiscrepancies)
	fmt.Printf("Countries with discrepancies: %d\n", len(result.CountriesWithIssues))
	fmt.Printf("Critical indicator discrepancies: %d\n", len(result.CriticalDiscrepancies))
	fmt.Printf("Overall system accuracy: %.2f%%\n", result.Accuracy)

	if result.Clean() {
		fmt.Println("\nPERFECT DATA INTEGRITY ACHIEVED")
		fmt.Println("All displayed values match WHO Statistical Annex CSV exactly")
	} else {
		fmt.Println("\nDATA INTEGRITY ISSUES DETECTED")
		fmt.Printf("   %d values do not match authentic WHO CSV data\n", result.TotalDiscrepancies)
	}

	if *reportPath != "" {
		report := verification.NewReport(*csvPath, *componentPath, result)
		if err := report.WriteJSON(*reportPath); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		fmt.Printf("\nReport written to %s\n", *reportPath)
	}

	if !result.Clean() {
		os.Exit(1)
	}
}

// loadRecords выбирает парсер по расширению файла
func loadRecords(path string) ([]importer.AnnexRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return importer.ParseAnnexExcelFile(path)
	}
	return importer.ParseAnnexCSV(path)
}
