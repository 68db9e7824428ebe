package codegen

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// countriesPattern находит объект стран внутри компонента карты.
// Закрывающая скобка объекта стоит с отступом в два пробела — это
// отличает ее от скобок вложенных объектов.
var countriesPattern = regexp.MustCompile(`(?s)const countries: Record<string, any> = \{(.*?)\n  \};`)

// ExtractCountriesBlock извлекает содержимое объекта стран из текста компонента
func ExtractCountriesBlock(content string) (string, bool) {
	match := countriesPattern.FindStringSubmatch(content)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// SpliceCountriesBlock заменяет объект стран в тексте компонента на новый блок
func SpliceCountriesBlock(content, block string) (string, error) {
	match := countriesPattern.FindString(content)
	if match == "" {
		return "", fmt.Errorf("countries object pattern not found in component")
	}
	replacement := fmt.Sprintf("const countries: Record<string, any> = {\n%s\n  };", strings.TrimRight(block, "\n"))
	return strings.Replace(content, match, replacement, 1), nil
}

// SpliceComponentFile заменяет объект стран в файле компонента на месте
func SpliceComponentFile(componentPath, block string) error {
	raw, err := os.ReadFile(componentPath)
	if err != nil {
		return fmt.Errorf("failed to read component file: %w", err)
	}

	updated, err := SpliceCountriesBlock(string(raw), block)
	if err != nil {
		return err
	}

	if err := os.WriteFile(componentPath, []byte(updated), 0644); err != nil {
		return fmt.Errorf("failed to write component file: %w", err)
	}
	return nil
}

// ReadReplacementBlock читает блок стран из ранее сгенерированного файла
// замены: содержимое между "const <имя> = {" и завершающим "};"
func ReadReplacementBlock(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read replacement file: %w", err)
	}
	content := string(raw)

	start := strings.Index(content, "= {")
	end := strings.LastIndex(content, "};")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("replacement file does not contain a countries object")
	}
	return strings.TrimRight(strings.TrimLeft(content[start+len("= {"):end], "\n"), " \n"), nil
}
