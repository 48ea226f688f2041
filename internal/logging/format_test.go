package logging

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type gaugePayload struct {
	TotalGB     float64 `json:"total_gb"`
	UsedPercent float64 `json:"used_percent"`
}

func TestPrettyJSON_IgnoresEmbeddedJSONInText(t *testing.T) {
	input := `500 INTERNAL SERVER ERROR: {"message":"failed"}`
	if _, ok := prettyJSON(input); ok {
		t.Fatalf("expected text with embedded JSON to stay inline")
	}
}

func TestPrettyJSON_StructAndError(t *testing.T) {
	pretty, ok := prettyJSON(gaugePayload{TotalGB: 465.6, UsedPercent: 50})
	if !ok || !strings.HasPrefix(pretty, "{") {
		t.Fatalf("prettyJSON(struct) = %q, %v", pretty, ok)
	}
	if _, ok := prettyJSON(errors.New("dial tcp 127.0.0.1:5001: connect: connection refused")); ok {
		t.Fatalf("plain error text should not be treated as JSON")
	}
}

func TestOrderedFieldKeys_PayloadLast(t *testing.T) {
	keys := orderedFieldKeys(map[string]any{
		"response": `{"message":"Invalid directory path"}`,
		"status":   "400 BAD REQUEST",
		"endpoint": "/api/organize",
	})
	want := []string{"endpoint", "status", "response"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Fatalf("orderedFieldKeys() = %v, want %v", keys, want)
	}
}

func TestFormatEventLine(t *testing.T) {
	line := FormatEventLine(Event{
		Time:    time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		Level:   slog.LevelWarn,
		Message: "log poll failed",
		Fields:  map[string]any{"error": errors.New("connection refused")},
	})
	want := "09:30:00 [WARN] log poll failed error=connection refused\n"
	if line != want {
		t.Fatalf("FormatEventLine() = %q, want %q", line, want)
	}
}

func TestFormatHTTPPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "  ", want: "<empty>"},
		{name: "text", raw: " bad gateway ", want: "bad gateway"},
		{name: "object", raw: `{"message":"ok"}`, want: "{\n  \"message\": \"ok\"\n}"},
		{name: "double encoded", raw: `"{\"message\":\"ok\"}"`, want: "{\n  \"message\": \"ok\"\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatHTTPPayload([]byte(tt.raw)); got != tt.want {
				t.Fatalf("FormatHTTPPayload(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("a\nb"); got != "a b" {
		t.Fatalf("Truncate() = %q", got)
	}
	long := strings.Repeat("x", clipLimit+10)
	if got := Truncate(long); len(got) != clipLimit+3 {
		t.Fatalf("Truncate() length = %d", len(got))
	}
}
