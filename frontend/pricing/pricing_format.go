package pricing

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var sekPrinter = message.NewPrinter(language.Swedish)

// FormatSEK rounds to whole kronor and formats with Swedish digit grouping,
// e.g. "12 500 kr".
func FormatSEK(amount float64) string {
	return sekPrinter.Sprintf("%d kr", int64(math.Round(amount)))
}
