package logs

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type Level string

const (
	INFO  Level = "INFO"
	WARN  Level = "WARN"
	ERROR Level = "ERROR"
	DEBUG Level = "DEBUG"
)

// levelPriority defines the priority of each log level
// higher value = more severe
var levelPriority = map[Level]int{
	DEBUG: 1,
	INFO:  2,
	WARN:  3,
	ERROR: 4,
}

// ParseLevel maps a config string (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	lvl := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelPriority[lvl]; !ok {
		return "", fmt.Errorf("logs: unknown level %q", s)
	}
	return lvl, nil
}

type Entry struct {
	TimeStamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %-5s %s", e.TimeStamp.Format("15:04:05"), e.Level, e.Message)
}

type Logger struct {
	mu      sync.Mutex
	entries []Entry
	maxSize int
	level   Level
	out     io.Writer
}

// level: minimum log level to record (e.g., INFO, WARN, ERROR, DEBUG)
//
// maxSize: maximum number of log entries kept in memory
func NewLogger(maxSize int, level Level) *Logger {
	return &Logger{
		entries: make([]Entry, 0, maxSize),
		maxSize: maxSize,
		level:   level,
	}
}

// SetOutput echoes every recorded entry to w. nil disables the echo.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

// log is the internal logging function
// it applies level filtering and ring buffer behavior
func (l *Logger) log(level Level, msg string) {
	// filter logs below the current level
	if levelPriority[level] < levelPriority[l.level] {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) >= l.maxSize {
		// remove oldest entry (ring behavior)
		l.entries = l.entries[1:]
	}

	entry := Entry{
		TimeStamp: time.Now(),
		Level:     level,
		Message:   msg,
	}
	l.entries = append(l.entries, entry)

	if l.out != nil {
		fmt.Fprintln(l.out, entry.String())
	}
}

func (l *Logger) Debug(msg string) {
	l.log(DEBUG, msg)
}

func (l *Logger) Info(msg string) {
	l.log(INFO, msg)
}

func (l *Logger) Warn(msg string) {
	l.log(WARN, msg)
}

func (l *Logger) Error(msg string) {
	l.log(ERROR, msg)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.log(DEBUG, fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.log(INFO, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.log(WARN, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log(ERROR, fmt.Sprintf(format, args...))
}

func (l *Logger) GetLast(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.entries) {
		out := make([]Entry, len(l.entries))
		copy(out, l.entries)
		return out
	}
	if n <= 0 {
		return []Entry{}
	}

	start := len(l.entries) - n
	out := make([]Entry, n)
	copy(out, l.entries[start:])
	return out
}
