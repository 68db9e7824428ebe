package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"whoannex/extraction"
	"whoannex/internal/config"
	"whoannex/scoring"
	"whoannex/verification"
)

// defaultSampleCodes контрольные страны разных уровней здоровья
var defaultSampleCodes = []string{"USA", "CHN", "NOR", "AFG", "ZAF", "JPN", "DEU", "TCD", "SWE", "SOM"}

// Моделирует расчет балла здоровья по данным компонента и проверяет,
// что распределение занимает шкалу 0-100, а не сбивается в узкую полосу.
func main() {
	componentPath := flag.String("component", "", "path to the map component (default from config)")
	countries := flag.String("countries", "", "comma-separated sample ISO3 codes (default: built-in sample)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *componentPath == "" {
		*componentPath = cfg.ComponentPath
	}

	sample := defaultSampleCodes
	if *countries != "" {
		sample = strings.Split(*countries, ",")
		for i := range sample {
			sample[i] = strings.ToUpper(strings.TrimSpace(sample[i]))
		}
	}

	fmt.Println("=== HEALTH SCORE DISTRIBUTION TEST ===")
	fmt.Println()

	implData, err := verification.ParseComponentFile(*componentPath)
	if err != nil {
		log.Fatalf("Failed to parse component: %v", err)
	}

	subset := make(extraction.Dataset)
	for _, code := range sample {
		if country, ok := implData[code]; ok {
			subset[code] = country
		}
	}
	fmt.Printf("Extracted data for %d test countries\n", len(subset))

	calculator := scoring.NewCalculator()
	scores := calculator.ComputeScores(subset)
	if len(scores) == 0 {
		log.Fatalf("No scores computed: sample countries not found in component")
	}

	fmt.Println("\n=== INDIVIDUAL COUNTRY SCORES ===")
	for _, score := range scores {
		fmt.Printf("%s (%s): %.1f (raw: %.1f)\n",
			score.Code, score.Name, score.CalibratedScore, score.RawScore)
	}

	fmt.Println("\n=== COLOR DISTRIBUTION ===")
	for _, band := range scoring.ColorDistribution(scores) {
		fmt.Printf("%s: %d countries\n", band.Label, band.Count)
	}

	min, max := scoring.ScoreRange(scores)
	fmt.Printf("\nScore range: %.1f - %.1f\n", min, max)

	if scoring.NarrowRange(scores) {
		fmt.Println("WARNING: Score range is too narrow - calibration may need adjustment")
	} else {
		fmt.Println("Score distribution looks appropriate")
	}
}
