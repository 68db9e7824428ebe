package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"whoannex/codegen"
	"whoannex/internal/config"
	"whoannex/quality"
)

// Вклеивает ранее сгенерированный файл замены в компонент карты,
// целиком заменяя объект стран.
func main() {
	replacementPath := flag.String("replacement", "", "path to a generated replacement file (required)")
	componentPath := flag.String("component", "", "path to the map component (default from config)")
	force := flag.Bool("force", false, "splice even if the block fails validation")
	flag.Parse()

	if *replacementPath == "" {
		log.Fatalf("Usage: replace_countries -replacement <file> [-component <file>]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *componentPath == "" {
		*componentPath = cfg.ComponentPath
	}

	block, err := codegen.ReadReplacementBlock(*replacementPath)
	if err != nil {
		log.Fatalf("Failed to read replacement data: %v", err)
	}

	if issues := quality.ValidateGeneratedBlock(block); len(issues) > 0 {
		log.Printf("Replacement block has %d issues:", len(issues))
		for _, issue := range issues {
			log.Printf("  %s", issue)
		}
		if !*force {
			log.Fatalf("Refusing to splice a broken block (use -force to override)")
		}
	}

	if err := codegen.SpliceComponentFile(*componentPath, block); err != nil {
		log.Fatalf("Replacement failed: %v", err)
	}

	countries := strings.Count(block, "name:")
	fmt.Println("Countries replacement completed successfully")
	fmt.Printf("Replaced with %d countries with authentic CSV data\n", countries)
}
