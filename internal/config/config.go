package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"whoannex/extraction"
	"whoannex/verification"
)

// Config конфигурация скриптов извлечения и верификации
type Config struct {
	// Пути
	AnnexCSVPath  string `json:"annex_csv_path"`
	ComponentPath string `json:"component_path"`
	OutputDir     string `json:"output_dir"`
	SessionDBPath string `json:"session_db_path"`

	// Извлечение
	MinIndicators int      `json:"min_indicators"`
	SanitizeNames bool     `json:"sanitize_names"`
	PriorityOrder []string `json:"priority_order"`

	// Верификация
	CriticalIndicators []string `json:"critical_indicators"`

	// Ограничение на явный набор стран; пусто — все страны
	TargetCountries []string `json:"target_countries"`
}

// DefaultConfig конфигурация по умолчанию
func DefaultConfig() *Config {
	return &Config{
		AnnexCSVPath:       "attached_assets/who_statistical_annex.csv",
		ComponentPath:      "client/src/components/world-health-map-simple.tsx",
		OutputDir:          "output",
		SessionDBPath:      "data/extraction_sessions.db",
		MinIndicators:      10,
		SanitizeNames:      true,
		PriorityOrder:      extraction.DefaultPriorityOrder,
		CriticalIndicators: verification.DefaultCriticalIndicators,
	}
}

// LoadConfig загружает конфигурацию: файл из WHOANNEX_CONFIG (если задан),
// поверх — переменные окружения, остальное — значения по умолчанию
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	if path := os.Getenv("WHOANNEX_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		log.Printf("Loaded config from %s", path)
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides применяет переменные окружения поверх конфигурации
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("WHOANNEX_CSV_PATH"); v != "" {
		config.AnnexCSVPath = v
	}
	if v := os.Getenv("WHOANNEX_COMPONENT_PATH"); v != "" {
		config.ComponentPath = v
	}
	if v := os.Getenv("WHOANNEX_OUTPUT_DIR"); v != "" {
		config.OutputDir = v
	}
	if v := os.Getenv("WHOANNEX_SESSION_DB"); v != "" {
		config.SessionDBPath = v
	}
	if v := os.Getenv("WHOANNEX_MIN_INDICATORS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("Warning: invalid WHOANNEX_MIN_INDICATORS=%q, keeping %d", v, config.MinIndicators)
		} else {
			config.MinIndicators = n
		}
	}
	if v := os.Getenv("WHOANNEX_SANITIZE_NAMES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("Warning: invalid WHOANNEX_SANITIZE_NAMES=%q, keeping %v", v, config.SanitizeNames)
		} else {
			config.SanitizeNames = b
		}
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.AnnexCSVPath == "" {
		return fmt.Errorf("annex_csv_path must not be empty")
	}
	if c.MinIndicators < 0 {
		return fmt.Errorf("min_indicators must not be negative, got %d", c.MinIndicators)
	}
	if len(c.PriorityOrder) == 0 {
		c.PriorityOrder = extraction.DefaultPriorityOrder
	}
	if len(c.CriticalIndicators) == 0 {
		c.CriticalIndicators = verification.DefaultCriticalIndicators
	}
	return nil
}

// ExtractionOptions собирает параметры извлечения из конфигурации
func (c *Config) ExtractionOptions() extraction.Options {
	return extraction.Options{
		MinIndicators:   c.MinIndicators,
		PriorityOrder:   c.PriorityOrder,
		SanitizeNames:   c.SanitizeNames,
		TargetCountries: extraction.BuildTargetSet(c.TargetCountries),
	}
}
