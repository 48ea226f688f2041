package logging

import (
	"encoding/json"
	"strings"
)

// FormatHTTPPayload renders a response body for log output. JSON bodies are
// indented, double-encoded JSON strings are unwrapped, anything else is
// returned trimmed.
func FormatHTTPPayload(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "<empty>"
	}
	var quoted string
	if err := json.Unmarshal([]byte(text), &quoted); err == nil {
		text = strings.TrimSpace(quoted)
	}
	if pretty, ok := prettyJSONText(text); ok {
		return pretty
	}
	return text
}
