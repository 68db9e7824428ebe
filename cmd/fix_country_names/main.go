package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"whoannex/internal/config"
	"whoannex/normalization"
)

// namePattern строка с названием страны в сгенерированном блоке.
// Захватывает все до завершающего "'," — включая сломанные литералы
// с неэкранированными апострофами.
var namePattern = regexp.MustCompile(`(name: ')(.*)(',)$`)

// Чинит экранирование названий стран прямо в компоненте: названия
// с апострофами (Cote d'Ivoire и т.п.) ломали синтаксис после вставки.
func main() {
	componentPath := flag.String("component", "", "path to the map component (default from config)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *componentPath == "" {
		*componentPath = cfg.ComponentPath
	}

	raw, err := os.ReadFile(*componentPath)
	if err != nil {
		log.Fatalf("Failed to read component file: %v", err)
	}

	lines := strings.Split(string(raw), "\n")
	fixed := 0
	for i, line := range lines {
		match := namePattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if match == nil {
			continue
		}
		name := match[2]
		repaired := normalization.EscapeJSString(normalization.UnescapeJSString(name))
		if repaired == name {
			continue
		}
		lines[i] = strings.Replace(line, match[1]+name+match[3], match[1]+repaired+match[3], 1)
		fixed++
	}

	if fixed == 0 {
		fmt.Println("No broken country names found")
		return
	}

	if err := os.WriteFile(*componentPath, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		log.Fatalf("Failed to write component file: %v", err)
	}

	fmt.Printf("Country name fixes applied successfully (%d lines)\n", fixed)
}
