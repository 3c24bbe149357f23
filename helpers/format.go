package helpers

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.English)

// FormatCount formats a row count with comma thousands separators
func FormatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}
