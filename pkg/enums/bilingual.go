package enums

import "strings"

// SplitBilingual breaks a wire value such as "Organoid(类器官)" into its English
// and Chinese halves. Values without a parenthesised suffix return zh == "".
func SplitBilingual(value string) (en, zh string) {
	open := strings.LastIndex(value, "(")
	if open <= 0 || !strings.HasSuffix(value, ")") {
		return value, ""
	}
	return strings.TrimSpace(value[:open]), value[open+1 : len(value)-1]
}

// Label is the short display text for a bilingual value, preferring Chinese.
func Label(value string) string {
	en, zh := SplitBilingual(value)
	if zh != "" {
		return zh
	}
	return en
}
