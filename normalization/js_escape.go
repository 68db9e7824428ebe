package normalization

import "strings"

// jsEscaper экранирует строку для JS-литерала в одинарных кавычках.
// strings.Replacer делает один проход, поэтому обратный слеш не
// экранируется повторно.
var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
)

// jsUnescaper обратное преобразование для повторного разбора
// сгенерированного текста
var jsUnescaper = strings.NewReplacer(
	`\\`, `\`,
	`\'`, `'`,
	`\"`, `"`,
)

// EscapeJSString экранирует спецсимволы JS-строки.
// Названия стран и индикаторов с апострофами (Cote d'Ivoire,
// "Democratic People's Republic of Korea") ломали синтаксис компонента.
func EscapeJSString(text string) string {
	return jsEscaper.Replace(text)
}

// UnescapeJSString снимает экранирование при разборе сгенерированного блока
func UnescapeJSString(text string) string {
	return jsUnescaper.Replace(text)
}
