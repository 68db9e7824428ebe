package importer

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const sampleCSV = `IndicatorName,IndicatorCode,Location,LocationCode,Year,Disaggregation,NumericValue,DisplayValue,Comments
Life expectancy at birth (years),WHOSIS_000001,France,FRA,2021,NA,82.5,82.5,
Life expectancy at birth (years),WHOSIS_000001,Global,GLOBAL,2021,NA,73.3,73.3,
"Maternal mortality ratio (per 100 000 live births)",MDG_0000000026,France,FRA,2020,NA,8,8,
Life expectancy at birth (years),WHOSIS_000001,Chad,TCD,2021,BTSX,,NO DATA,
`

// writeTempFile пишет содержимое во временный файл теста
func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

// TestParseAnnexCSV проверяет разбор обычной UTF-8 выгрузки
func TestParseAnnexCSV(t *testing.T) {
	path := writeTempFile(t, "annex.csv", []byte(sampleCSV))

	records, err := ParseAnnexCSV(path)
	if err != nil {
		t.Fatalf("ParseAnnexCSV() error = %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("ParseAnnexCSV() returned %d records, want 4", len(records))
	}

	first := records[0]
	if first.IndicatorName != "Life expectancy at birth (years)" {
		t.Errorf("IndicatorName = %q", first.IndicatorName)
	}
	if first.Location != "France" || first.LocationCode != "FRA" {
		t.Errorf("Location = %q, LocationCode = %q", first.Location, first.LocationCode)
	}
	if first.Disaggregation != "NA" || first.NumericValue != "82.5" {
		t.Errorf("Disaggregation = %q, NumericValue = %q", first.Disaggregation, first.NumericValue)
	}

	// Поле в кавычках с запятой внутри
	if records[2].IndicatorName != "Maternal mortality ratio (per 100 000 live births)" {
		t.Errorf("quoted IndicatorName = %q", records[2].IndicatorName)
	}

	// Пустое значение сохраняется как есть, решение принимает экстрактор
	if records[3].NumericValue != "" || records[3].DisplayValue != "NO DATA" {
		t.Errorf("empty value row parsed as NumericValue=%q DisplayValue=%q",
			records[3].NumericValue, records[3].DisplayValue)
	}
}

// TestParseAnnexCSV_MalformedLine проверяет, что битая строка пропускается,
// а соседние строки разбираются как обычно
func TestParseAnnexCSV_MalformedLine(t *testing.T) {
	data := `IndicatorName,IndicatorCode,Location,LocationCode,Year,Disaggregation,NumericValue,DisplayValue,Comments
Life expectancy at birth (years),WHOSIS_000001,France,FRA,2021,NA,82.5,82.5,
Life expectancy at birth (years),WHOSIS_000001,Ch"ad,TCD,2021,NA,52.5,52.5,
UHC: Service coverage index,UHC_INDEX_REPORTED,France,FRA,2021,NA,80,80,
`
	path := writeTempFile(t, "annex_malformed.csv", []byte(data))

	records, err := ParseAnnexCSV(path)
	if err != nil {
		t.Fatalf("ParseAnnexCSV() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ParseAnnexCSV() returned %d records, want 2", len(records))
	}
	if records[0].NumericValue != "82.5" {
		t.Errorf("row before malformed line: NumericValue = %q", records[0].NumericValue)
	}
	if records[1].IndicatorName != "UHC: Service coverage index" {
		t.Errorf("row after malformed line: IndicatorName = %q", records[1].IndicatorName)
	}
}

// TestParseAnnexCSV_RaggedRows проверяет, что строки с неполным числом полей
// принимаются, недостающие поля остаются пустыми
func TestParseAnnexCSV_RaggedRows(t *testing.T) {
	data := `IndicatorName,IndicatorCode,Location,LocationCode,Year,Disaggregation,NumericValue,DisplayValue,Comments
Life expectancy at birth (years),WHOSIS_000001,France,FRA,2021,NA,82.5
UHC: Service coverage index,UHC_INDEX_REPORTED,Chad,TCD,2021,NA,42,42,comment,extra
`
	path := writeTempFile(t, "annex_ragged.csv", []byte(data))

	records, err := ParseAnnexCSV(path)
	if err != nil {
		t.Fatalf("ParseAnnexCSV() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ParseAnnexCSV() returned %d records, want 2", len(records))
	}
	if records[0].NumericValue != "82.5" || records[0].DisplayValue != "" || records[0].Comments != "" {
		t.Errorf("short row parsed as NumericValue=%q DisplayValue=%q Comments=%q",
			records[0].NumericValue, records[0].DisplayValue, records[0].Comments)
	}
	if records[1].Comments != "comment" {
		t.Errorf("long row Comments = %q", records[1].Comments)
	}
}

// TestParseAnnexCSV_BOM проверяет, что BOM в начале файла не ломает заголовок
func TestParseAnnexCSV_BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleCSV)...)
	path := writeTempFile(t, "annex_bom.csv", data)

	records, err := ParseAnnexCSV(path)
	if err != nil {
		t.Fatalf("ParseAnnexCSV() error = %v", err)
	}
	if len(records) != 4 {
		t.Errorf("ParseAnnexCSV() returned %d records, want 4", len(records))
	}
	if records[0].IndicatorName != "Life expectancy at birth (years)" {
		t.Errorf("IndicatorName after BOM = %q", records[0].IndicatorName)
	}
}

// TestParseAnnexCSV_ShuffledColumns проверяет независимость от порядка колонок
func TestParseAnnexCSV_ShuffledColumns(t *testing.T) {
	shuffled := `Location,NumericValue,IndicatorName,LocationCode,Disaggregation,Year
France,82.5,Life expectancy at birth (years),FRA,NA,2021
`
	path := writeTempFile(t, "annex_shuffled.csv", []byte(shuffled))

	records, err := ParseAnnexCSV(path)
	if err != nil {
		t.Fatalf("ParseAnnexCSV() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ParseAnnexCSV() returned %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Location != "France" || rec.LocationCode != "FRA" || rec.NumericValue != "82.5" {
		t.Errorf("shuffled columns parsed wrong: %+v", rec)
	}
	// Колонки, которых нет в заголовке, остаются пустыми
	if rec.Comments != "" || rec.DisplayValue != "" {
		t.Errorf("absent columns should be empty: %+v", rec)
	}
}

// TestParseAnnexCSV_Windows1251 проверяет запасной декодер Windows-1251
func TestParseAnnexCSV_Windows1251(t *testing.T) {
	utf8CSV := `IndicatorName,IndicatorCode,Location,LocationCode,Year,Disaggregation,NumericValue,DisplayValue,Comments
Life expectancy at birth (years),WHOSIS_000001,France,FRA,2021,NA,82.5,82.5,данные ВОЗ
`
	encoder := charmap.Windows1251.NewEncoder()
	encoded, _, err := transform.Bytes(encoder, []byte(utf8CSV))
	if err != nil {
		t.Fatalf("Failed to encode fixture: %v", err)
	}
	path := writeTempFile(t, "annex_1251.csv", encoded)

	records, err := ParseAnnexCSV(path)
	if err != nil {
		t.Fatalf("ParseAnnexCSV() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ParseAnnexCSV() returned %d records, want 1", len(records))
	}
	if records[0].Comments != "данные ВОЗ" {
		t.Errorf("Comments after 1251 decode = %q", records[0].Comments)
	}
}

// TestParseAnnexCSV_MissingColumns проверяет ошибку при неполном заголовке
func TestParseAnnexCSV_MissingColumns(t *testing.T) {
	path := writeTempFile(t, "annex_bad.csv", []byte("Foo,Bar\n1,2\n"))

	if _, err := ParseAnnexCSV(path); err == nil {
		t.Error("ParseAnnexCSV() should return error when required columns are missing")
	}
}

// TestParseAnnexCSV_NonexistentFile проверяет обработку отсутствующего файла
func TestParseAnnexCSV_NonexistentFile(t *testing.T) {
	if _, err := ParseAnnexCSV("nonexistent.csv"); err == nil {
		t.Error("ParseAnnexCSV() should return error for nonexistent file")
	}
}

// TestParseAnnexExcelFile_InvalidFile проверяет обработку невалидного файла
func TestParseAnnexExcelFile_InvalidFile(t *testing.T) {
	if _, err := ParseAnnexExcelFile("nonexistent.xlsx"); err == nil {
		t.Error("ParseAnnexExcelFile() should return error for nonexistent file")
	}

	path := writeTempFile(t, "empty.xlsx", nil)
	if _, err := ParseAnnexExcelFile(path); err == nil {
		t.Error("ParseAnnexExcelFile() should return error for empty/invalid Excel file")
	}
}

// TestDecodeAnnexBytes_Invalid проверяет отказ на байтах вне обеих кодировок
func TestDecodeAnnexBytes_Invalid(t *testing.T) {
	// Windows-1251 декодирует почти любые байты, поэтому валидный UTF-8
	// после декодирования — ожидаемый исход для большинства входов
	decoded, err := DecodeAnnexBytes([]byte{0xC0, 0xC1, 0xC2})
	if err != nil {
		t.Fatalf("DecodeAnnexBytes() error = %v", err)
	}
	if len(decoded) == 0 {
		t.Error("DecodeAnnexBytes() returned empty result")
	}
}
