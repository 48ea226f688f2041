package logpoll

import "strings"

type Class string

const (
	ClassNone    Class = ""
	ClassError   Class = "error"
	ClassWarning Class = "warning"
	ClassSuccess Class = "success"
	ClassInfo    Class = "info"
)

// Placeholder is shown alone when the backend buffer is empty.
const Placeholder = "System ready. Awaiting commands..."

type Line struct {
	Text  string
	Class Class
}

// Classify assigns a display class by marker substring. Error markers win
// over warning markers, which win over success and separator markers.
func Classify(text string) Class {
	switch {
	case strings.Contains(text, "❌") || strings.Contains(text, "Error"):
		return ClassError
	case strings.Contains(text, "⚠️") || strings.Contains(text, "Warning"):
		return ClassWarning
	case strings.Contains(text, "✅"):
		return ClassSuccess
	case strings.Contains(text, "---"):
		return ClassInfo
	default:
		return ClassNone
	}
}

// BuildLines turns a fetched buffer into rendered lines.
func BuildLines(buffer []string) []Line {
	if len(buffer) == 0 {
		return []Line{{Text: Placeholder, Class: ClassInfo}}
	}
	lines := make([]Line, len(buffer))
	for i, text := range buffer {
		lines[i] = Line{Text: text, Class: Classify(text)}
	}
	return lines
}
