package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// NewJSONLogger creates a logger writing JSON lines to writer at level,
// tagging every line with facility (repmgrd's config "logfacility",
// carried through for syslog-forwarding setups outside this core).
func NewJSONLogger(writer io.Writer, level Level, facility string) *JSONLogger {
	return &JSONLogger{
		writer:   writer,
		level:    level,
		facility: facility,
		fields:   make([]Field, 0),
	}
}

// NewDefaultLogger creates a logger writing to stdout at INFO level with
// no facility tag.
func NewDefaultLogger() *JSONLogger {
	return NewJSONLogger(os.Stdout, InfoLevel, "")
}

func (l *JSONLogger) log(level Level, msg string, fields ...Field) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fieldMap := make(map[string]any)
	for _, f := range l.fields {
		fieldMap[f.Key] = f.Value
	}
	for _, f := range fields {
		fieldMap[f.Key] = f.Value
	}

	entry := LogEntry{
		Time:     time.Now().Format(time.RFC3339Nano),
		Level:    level.String(),
		Message:  msg,
		Facility: l.facility,
	}
	if len(fieldMap) > 0 {
		entry.Fields = fieldMap
	}

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(l.writer, "[ERROR] failed to marshal log entry: %v\n", err)
		return
	}

	l.writer.Write(data)
	l.writer.Write([]byte("\n"))
}

func (l *JSONLogger) Debug(msg string, fields ...Field)  { l.log(DebugLevel, msg, fields...) }
func (l *JSONLogger) Info(msg string, fields ...Field)   { l.log(InfoLevel, msg, fields...) }
func (l *JSONLogger) Notice(msg string, fields ...Field) { l.log(NoticeLevel, msg, fields...) }
func (l *JSONLogger) Warn(msg string, fields ...Field)   { l.log(WarnLevel, msg, fields...) }
func (l *JSONLogger) Error(msg string, fields ...Field)  { l.log(ErrorLevel, msg, fields...) }

// With returns a child logger carrying fields on every subsequent line,
// used to pin cluster_name/node_id/component context for a component.
func (l *JSONLogger) With(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	newFields := make([]Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &JSONLogger{
		writer:   l.writer,
		level:    l.level,
		facility: l.facility,
		fields:   newFields,
	}
}

func (l *JSONLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *JSONLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

var (
	defaultLogger Logger
	once          sync.Once
)

// DefaultLogger returns the process-wide fallback logger, used only by
// code that runs before a Config is available (the config file loader's
// warnings).
func DefaultLogger() Logger {
	once.Do(func() {
		defaultLogger = NewDefaultLogger()
	})
	return defaultLogger
}

// SetDefaultLogger overrides the process-wide fallback logger.
func SetDefaultLogger(logger Logger) {
	defaultLogger = logger
}
