package verification

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Report сериализуемый отчет о сверке для сохранения на диск
type Report struct {
	GeneratedAt   string  `json:"generated_at"`
	SourceCSV     string  `json:"source_csv"`
	ComponentPath string  `json:"component_path"`
	Result        *Result `json:"result"`
}

// NewReport собирает отчет о сверке
func NewReport(sourceCSV, componentPath string, result *Result) *Report {
	return &Report{
		GeneratedAt:   time.Now().Format(time.RFC3339),
		SourceCSV:     sourceCSV,
		ComponentPath: componentPath,
		Result:        result,
	}
}

// WriteJSON пишет отчет в JSON-файл
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal verification report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write verification report: %w", err)
	}
	return nil
}
