package parser

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Narration is a human readable record of one applied event.
type Narration struct {
	Turn int
	Text string
}

var printer = message.NewPrinter(language.English)

func narrate(format string, args ...any) string {
	return printer.Sprintf(format, args...)
}
