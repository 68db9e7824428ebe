package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"whoannex/internal/config"
)

// Диагностика кодировки выгрузки: файл приходит копипастой из браузера
// или через Excel, и названия стран с диакритикой (Côte d'Ivoire, Türkiye)
// первыми выдают сломанную кодировку.
func main() {
	csvPath := flag.String("csv", "", "path to the annex CSV (default from config)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	filePath := *csvPath
	if filePath == "" {
		filePath = cfg.AnnexCSVPath
	}

	fmt.Printf("Analyzing CSV file: %s\n\n", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer file.Close()

	// Первых 2000 байт достаточно: заголовок и несколько строк данных
	data := make([]byte, 2000)
	n, err := io.ReadFull(file, data)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		log.Fatalf("Failed to read: %v", err)
	}
	data = data[:n]

	fmt.Printf("Read %d bytes\n\n", len(data))

	fmt.Println("First 100 bytes (hex):")
	for i := 0; i < len(data) && i < 100; i++ {
		if i%16 == 0 {
			fmt.Printf("\n%04x: ", i)
		}
		fmt.Printf("%02x ", data[i])
	}
	fmt.Println()

	fmt.Println("Trying different encodings:")
	fmt.Println(strings.Repeat("=", 80))

	if utf8.Valid(data) {
		str := string(data)
		fmt.Printf("\n1. As UTF-8:\n")
		fmt.Printf("   Valid UTF-8: yes\n")
		fmt.Printf("   Has BOM: %v\n", strings.HasPrefix(str, "\ufeff"))
		fmt.Printf("   Contains IndicatorName header: %v\n", strings.Contains(str, "IndicatorName"))
		fmt.Printf("   Contains mojibake (Ã): %v\n", strings.Contains(str, "Ã"))
		fmt.Printf("   Sample (first 150 chars): %s\n", truncate(str, 150))
	} else {
		fmt.Printf("\n1. As UTF-8:\n")
		fmt.Printf("   Valid UTF-8: no\n")
	}

	decoder := charmap.Windows1251.NewDecoder()
	decoded, _, err := transform.Bytes(decoder, data)
	if err == nil && len(decoded) > 0 && utf8.Valid(decoded) {
		str := string(decoded)
		fmt.Printf("\n2. As Windows-1251:\n")
		fmt.Printf("   Valid UTF-8 after decode: yes\n")
		fmt.Printf("   Contains IndicatorName header: %v\n", strings.Contains(str, "IndicatorName"))
		fmt.Printf("   Sample (first 150 chars): %s\n", truncate(str, 150))
	}

	decoder = charmap.Windows1252.NewDecoder()
	decoded, _, err = transform.Bytes(decoder, data)
	if err == nil && len(decoded) > 0 && utf8.Valid(decoded) {
		str := string(decoded)
		fmt.Printf("\n3. As Windows-1252:\n")
		fmt.Printf("   Valid UTF-8 after decode: yes\n")
		fmt.Printf("   Contains IndicatorName header: %v\n", strings.Contains(str, "IndicatorName"))
		fmt.Printf("   Sample (first 150 chars): %s\n", truncate(str, 150))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
