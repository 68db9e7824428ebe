package importer

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseAnnexExcelFile парсит Excel-выгрузку статистического приложения ВОЗ.
// Портал ВОЗ отдает те же данные в .xlsx; структура колонок совпадает с CSV.
func ParseAnnexExcelFile(filePath string) ([]AnnexRecord, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("file is too short, expected at least header row and one data row")
	}

	cols := findColumnIndices(rows[0])
	if cols.indicatorName == -1 || cols.location == -1 || cols.locationCode == -1 || cols.numericValue == -1 {
		return nil, fmt.Errorf("required columns not found in Excel header: %v", rows[0])
	}

	var records []AnnexRecord
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if isEmptyRow(row) {
			continue
		}
		records = append(records, AnnexRecord{
			IndicatorName:  strings.TrimSpace(field(row, cols.indicatorName)),
			IndicatorCode:  strings.TrimSpace(field(row, cols.indicatorCode)),
			Location:       strings.TrimSpace(field(row, cols.location)),
			LocationCode:   strings.TrimSpace(field(row, cols.locationCode)),
			Year:           strings.TrimSpace(field(row, cols.year)),
			Disaggregation: strings.TrimSpace(field(row, cols.disaggregation)),
			NumericValue:   strings.TrimSpace(field(row, cols.numericValue)),
			DisplayValue:   strings.TrimSpace(field(row, cols.displayValue)),
			Comments:       strings.TrimSpace(field(row, cols.comments)),
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no data rows found in %s", filePath)
	}

	return records, nil
}

// isEmptyRow проверяет, что строка не содержит данных
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
