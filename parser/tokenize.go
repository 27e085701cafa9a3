package parser

import "strings"

const fieldDelimiter = "|"

// Line is one tokenized log line. Fields keeps protocol positions, so
// Fields[0] is whatever precedes the leading delimiter and Fields[1] is the tag.
type Line struct {
	Tag    string
	Fields []string
}

// Field returns the i-th field or "" when the line is shorter.
func (l Line) Field(i int) string {
	if i < 0 || i >= len(l.Fields) {
		return ""
	}
	return l.Fields[i]
}

// Tokenize splits a raw line into trimmed fields. ok is false for non-event
// lines such as blank lines or chat.
func Tokenize(raw string) (Line, bool) {
	parts := strings.Split(strings.TrimSpace(raw), fieldDelimiter)
	if len(parts) < 2 {
		return Line{}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return Line{Tag: parts[1], Fields: parts}, true
}
