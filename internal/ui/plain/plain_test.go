package plain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fatih/color"

	"organizer-console/internal/config"
	"organizer-console/internal/logging"
	"organizer-console/internal/logpoll"
)

func init() {
	color.NoColor = true
}

func quietLogger() *logging.Logger {
	logger := logging.New(false)
	logger.SetTerminalOutputEnabled(false)
	return logger
}

func newTestRunner(t *testing.T, opts config.Options, handler http.HandlerFunc) (*runner, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts.BaseURL = srv.URL
	var out bytes.Buffer
	r, err := newRunner(&out, opts, config.DefaultTuning(), quietLogger())
	if err != nil {
		t.Fatalf("newRunner() error = %v", err)
	}
	return r, &out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestRunAction_SuccessPrintsToastAndLog(t *testing.T) {
	var organizeBody map[string]string
	r, out := newTestRunner(t, config.Options{Action: "organize", Path: "/data", Method: "date"}, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/api/organize":
			_ = json.NewDecoder(req.Body).Decode(&organizeBody)
			writeJSON(w, http.StatusOK, map[string]any{"message": "Organized 12 files"})
		case "/api/logs":
			writeJSON(w, http.StatusOK, map[string]any{"logs": []string{"✅ Moved a.txt"}})
		default:
			http.NotFound(w, req)
		}
	})

	if code := r.run(context.Background()); code != exitOK {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	if organizeBody["path"] != "/data" || organizeBody["method"] != "date" {
		t.Fatalf("request body = %v", organizeBody)
	}
	text := out.String()
	for _, want := range []string{"✅ Organized 12 files", "Backend log:", "Moved a.txt"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunAction_MissingPathRejected(t *testing.T) {
	var calls atomic.Int32
	r, out := newTestRunner(t, config.Options{Action: "duplicates"}, func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/api/logs" {
			calls.Add(1)
		}
		writeJSON(w, http.StatusOK, map[string]any{"logs": []string{}})
	})

	if code := r.run(context.Background()); code != exitFailed {
		t.Fatalf("exit code = %d", code)
	}
	if calls.Load() != 0 {
		t.Fatalf("backend called %d times", calls.Load())
	}
	if !strings.Contains(out.String(), "Please paste an absolute directory path first!") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunAction_HTTPErrorFails(t *testing.T) {
	r, out := newTestRunner(t, config.Options{Action: "undo"}, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/api/undo":
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Nothing to undo"})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"logs": []string{}})
		}
	})

	if code := r.run(context.Background()); code != exitFailed {
		t.Fatalf("exit code = %d", code)
	}
	text := out.String()
	if !strings.Contains(text, "❌ Nothing to undo") || !strings.Contains(text, logpoll.Placeholder) {
		t.Fatalf("output = %q", text)
	}
}

func TestRunSearch_PrintsTableAndStatus(t *testing.T) {
	r, out := newTestRunner(t, config.Options{Query: "report", Path: "/data"}, func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"results": []map[string]string{
				{"name": "report.pdf", "path": "/data/report.pdf", "size": "2 MB"},
			},
		})
	})

	if code := r.run(context.Background()); code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	text := out.String()
	for _, want := range []string{"report.pdf", "/data/report.pdf", "2 MB", `Found 1 matches for "report"`} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunSearch_EmptyResults(t *testing.T) {
	r, out := newTestRunner(t, config.Options{Query: "zzz", Path: "/data"}, func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "results": []any{}})
	})

	if code := r.run(context.Background()); code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	text := out.String()
	if !strings.Contains(text, "No files found matching your query.") || !strings.Contains(text, "0 matches found.") {
		t.Fatalf("output = %q", text)
	}
}

func TestFollow_PrintsGaugeAndNewLines(t *testing.T) {
	var polls atomic.Int32
	r, out := newTestRunner(t, config.Options{}, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/api/system_storage":
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "total_gb": 100, "used_percent": 80})
		case "/api/logs":
			n := polls.Add(1)
			logs := []string{"--- session ---"}
			if n > 1 {
				logs = append(logs, "⚠️ Warning: skipped")
			}
			writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	go func() { done <- r.run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for polls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	cancel()
	if code := <-done; code != exitOK {
		t.Fatalf("exit code = %d", code)
	}

	text := out.String()
	for _, want := range []string{"80%", "Total: 100 GB", "--- session ---", "Warning: skipped"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Count(text, "--- session ---") != 1 {
		t.Fatalf("session line printed more than once:\n%s", text)
	}
}

func TestPrintNewLines_RestartReprints(t *testing.T) {
	var out bytes.Buffer
	r := &runner{out: &out}
	r.printNewLines(logpoll.BuildLines([]string{"a", "b"}))
	r.printNewLines(logpoll.BuildLines([]string{"c"}))
	text := out.String()
	if !strings.Contains(text, "--- log restarted ---") || !strings.HasSuffix(text, "c\n") {
		t.Fatalf("output = %q", text)
	}
}

func logWindow(from, to int) []logpoll.Line {
	buffer := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		buffer = append(buffer, fmt.Sprintf("✅ Moved file-%03d.txt", i))
	}
	return logpoll.BuildLines(buffer)
}

func TestPrintNewLines_FullBufferSlides(t *testing.T) {
	var out bytes.Buffer
	r := &runner{out: &out}
	r.printNewLines(logWindow(0, 99))
	out.Reset()

	r.printNewLines(logWindow(1, 100))
	if got := out.String(); got != "✅ Moved file-100.txt\n" {
		t.Fatalf("after one-line slide output = %q", got)
	}

	out.Reset()
	r.printNewLines(logWindow(4, 103))
	text := out.String()
	if strings.Contains(text, "log restarted") || strings.Count(text, "\n") != 3 || !strings.HasSuffix(text, "file-103.txt\n") {
		t.Fatalf("after three-line slide output = %q", text)
	}

	out.Reset()
	r.printNewLines(logWindow(4, 103))
	if out.Len() != 0 {
		t.Fatalf("unchanged buffer printed %q", out.String())
	}
}

func TestPrintNewLines_PlaceholderIsNotARestart(t *testing.T) {
	var out bytes.Buffer
	r := &runner{out: &out}
	r.printNewLines(logpoll.BuildLines(nil))
	r.printNewLines(logpoll.BuildLines([]string{"--- session ---"}))
	text := out.String()
	if strings.Contains(text, "log restarted") || !strings.HasSuffix(text, "--- session ---\n") {
		t.Fatalf("output = %q", text)
	}
}
