package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultFilePath is the log file, relative to the working directory (project root when run via go run ./cmd/game).
const DefaultFilePath = "logs/game.log"

// maxLines bounds the in-memory copy kept for on-screen display.
const maxLines = 64

// Options selects where records go. Console may be nil, e.g. when the terminal backend owns the tty.
type Options struct {
	Level   string
	File    string
	Console io.Writer
}

// Logger is a zerolog.Logger that also appends JSON records to a file and keeps the most recent
// records in memory as plain text lines.
type Logger struct {
	zerolog.Logger
	file *os.File
	mem  *lineBuffer
}

// New opens (appending) the log file, creating its directory, and returns a Logger at the given level.
func New(opts Options) (*Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		lv, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = lv
	}

	mem := &lineBuffer{}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: mem, NoColor: true, TimeFormat: "2006-01-02 15:04:05"}}
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: "15:04:05"})
	}

	var file *os.File
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		file = f
		writers = append(writers, f)
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	return &Logger{Logger: zl, file: file, mem: mem}, nil
}

// Lines returns a copy of the most recent records, oldest first.
func (l *Logger) Lines() []string {
	return l.mem.lines()
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

type lineBuffer struct {
	mu  sync.Mutex
	buf []string
}

func (b *lineBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		b.buf = append(b.buf, line)
	}
	if over := len(b.buf) - maxLines; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
	}
	return len(p), nil
}

func (b *lineBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.buf))
	copy(out, b.buf)
	return out
}
