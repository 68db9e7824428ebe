package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// AnnexRecord представляет одну строку CSV-выгрузки статистического приложения ВОЗ
type AnnexRecord struct {
	IndicatorName  string // Название индикатора
	IndicatorCode  string // Код индикатора
	Location       string // Страна или регион
	LocationCode   string // Трехбуквенный код ISO3 (или код региона)
	Year           string // Год наблюдения
	Disaggregation string // Метка дезагрегации (NA, BTSX, SEX_MLE, ...)
	NumericValue   string // Числовое значение как строка, может быть пустым или "NO DATA"
	DisplayValue   string // Отображаемое значение
	Comments       string // Комментарии
}

// columnIndices индексы колонок в заголовке CSV
type columnIndices struct {
	indicatorName  int
	indicatorCode  int
	location       int
	locationCode   int
	year           int
	disaggregation int
	numericValue   int
	displayValue   int
	comments       int
}

// ParseAnnexCSV парсит CSV-файл статистического приложения ВОЗ.
// Колонки определяются по заголовку, порядок колонок не фиксирован.
func ParseAnnexCSV(filePath string) ([]AnnexRecord, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read annex file: %w", err)
	}

	decoded, err := DecodeAnnexBytes(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1 // выгрузки ВОЗ содержат строки с неполным числом полей

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	cols := findColumnIndices(header)
	if cols.indicatorName == -1 || cols.location == -1 || cols.locationCode == -1 || cols.numericValue == -1 {
		return nil, fmt.Errorf("required columns not found in header: %v", header)
	}

	var records []AnnexRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			// Битые строки пропускаем, сам файл нередко собран копипастой
			log.Printf("Skipping malformed CSV line %d: %v", line, err)
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

// DecodeAnnexBytes приводит содержимое файла к UTF-8.
// Убирает BOM; если байты не являются валидным UTF-8, пробует Windows-1251
// (выгрузки, прошедшие через Excel, иногда приходят в этой кодировке).
func DecodeAnnexBytes(raw []byte) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	if utf8.Valid(raw) {
		return raw, nil
	}

	decoder := charmap.Windows1251.NewDecoder()
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil || !utf8.Valid(decoded) {
		return nil, fmt.Errorf("file is neither valid UTF-8 nor Windows-1251")
	}
	log.Printf("Annex file decoded from Windows-1251")
	return decoded, nil
}

// findColumnIndices определяет индексы колонок по названиям в заголовке
func findColumnIndices(header []string) columnIndices {
	cols := columnIndices{
		indicatorName:  -1,
		indicatorCode:  -1,
		location:       -1,
		locationCode:   -1,
		year:           -1,
		disaggregation: -1,
		numericValue:   -1,
		displayValue:   -1,
		comments:       -1,
	}

	for i, name := range header {
		switch normalizeHeader(name) {
		case "indicatorname":
			cols.indicatorName = i
		case "indicatorcode":
			cols.indicatorCode = i
		case "location":
			cols.location = i
		case "locationcode":
			cols.locationCode = i
		case "year":
			cols.year = i
		case "disaggregation":
			cols.disaggregation = i
		case "numericvalue":
			cols.numericValue = i
		case "displayvalue":
			cols.displayValue = i
		case "comments":
			cols.comments = i
		}
	}

	return cols
}

// normalizeHeader нормализует название колонки для сопоставления
func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "_", "")
	name = strings.TrimPrefix(name, "\ufeff")
	return name
}

// field безопасно извлекает поле из строки с неполным числом колонок
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
