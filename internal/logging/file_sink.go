package logging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFileMaxBytes = 5 * 1024 * 1024

// fileSink appends JSONL records to a per-session file and starts a new part
// once maxBytes would be exceeded.
type fileSink struct {
	mu       sync.Mutex
	dir      string
	session  string
	maxBytes int64
	part     int
	file     *os.File
	size     int64
	closed   bool
}

type fileRecord struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

func DefaultLogDirPath() (string, error) {
	root, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "organizer-console", "logs"), nil
}

func newFileSink(maxBytes int64) (*fileSink, error) {
	dir, err := DefaultLogDirPath()
	if err != nil {
		return nil, err
	}
	return openFileSink(dir, time.Now().UTC().Format("20060102-150405"), maxBytes)
}

func openFileSink(dir string, session string, maxBytes int64) (*fileSink, error) {
	if maxBytes <= 0 {
		maxBytes = defaultLogFileMaxBytes
	}
	s := &fileSink{dir: dir, session: session, maxBytes: maxBytes}
	if err := s.nextPartLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileSink) WriteEvent(event Event) error {
	if s == nil {
		return nil
	}
	record := fileRecord{
		Time:    event.Time.UTC().Format(time.RFC3339Nano),
		Level:   strings.ToUpper(event.Level.String()),
		Message: event.Message,
	}
	if len(event.Fields) > 0 {
		record.Fields = make(map[string]any, len(event.Fields))
		for key, value := range event.Fields {
			record.Fields[key] = jsonSafe(value)
		}
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	payload = append(payload, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return os.ErrClosed
	}
	if s.file == nil || (s.size > 0 && s.size+int64(len(payload)) > s.maxBytes) {
		if err := s.nextPartLocked(); err != nil {
			return err
		}
	}
	n, err := s.file.Write(payload)
	s.size += int64(n)
	return err
}

func (s *fileSink) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.size = 0
	return err
}

func (s *fileSink) nextPartLocked() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
	s.part++
	path := filepath.Join(s.dir, fmt.Sprintf("console-%s-%03d.jsonl", s.session, s.part))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	s.file = f
	s.size = info.Size()
	return nil
}

// jsonSafe converts values json.Marshal would mangle (errors become "{}").
func jsonSafe(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case error:
		return v.Error()
	case slog.Level:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return value
	}
}
