package logger

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// logEntry is a single formatted line waiting to be written by the backend.
type logEntry struct {
	log   []byte
	level Level
}

// Logger is a subsystem logger for a Backend.
type Logger struct {
	lvl       Level // atomic
	tag       string
	b         *Backend
	writeChan chan<- logEntry
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.lvl)))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32((*uint32)(&l.lvl), uint32(level))
}

// Backend returns the log backend
func (l *Logger) Backend() *Backend {
	return l.b
}

// Tracef formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.Writef(LevelTrace, format, args...)
}

// Debugf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Writef(LevelDebug, format, args...)
}

// Infof formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Writef(LevelInfo, format, args...)
}

// Warnf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Writef(LevelWarn, format, args...)
}

// Errorf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Writef(LevelError, format, args...)
}

// Criticalf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.Writef(LevelCritical, format, args...)
}

// Writef formats message according to format specifier and writes it to the
// backend if the logger's level permits it. Nothing is formatted when the
// message is filtered, which keeps disabled trace calls cheap.
func (l *Logger) Writef(logLevel Level, format string, args ...interface{}) {
	if l.Level() > logLevel || l.b == nil || !l.b.IsRunning() {
		return
	}
	l.write(logLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) write(logLevel Level, message string) {
	var file string
	var line int
	if l.b.flag&(LogFlagShortFile|LogFlagLongFile) != 0 {
		var ok bool
		_, file, line, ok = runtime.Caller(3)
		if !ok {
			file = "???"
			line = 0
		}
	}

	buf := bytes.NewBuffer(make([]byte, 0, normalLogSize))
	formatHeader(buf, time.Now(), logLevel.String(), l.tag, l.b.flag, file, line)
	buf.WriteString(message)
	if !strings.HasSuffix(message, "\n") {
		buf.WriteByte('\n')
	}
	l.writeChan <- logEntry{log: buf.Bytes(), level: logLevel}
}

// formatHeader writes the header of a log line: timestamp, level, subsystem
// tag and optionally the call site.
func formatHeader(buf *bytes.Buffer, t time.Time, lvl, tag string, flags uint32, file string, line int) {
	buf.WriteString(t.Format("2006-01-02 15:04:05.000"))
	buf.WriteString(" [")
	buf.WriteString(lvl)
	buf.WriteString("] ")
	buf.WriteString(tag)
	if file != "" {
		if flags&LogFlagShortFile != 0 {
			file = shortFile(file)
		}
		fmt.Fprintf(buf, " %s:%d", file, line)
	}
	buf.WriteString(": ")
}

func shortFile(file string) string {
	for i := len(file) - 1; i > 0; i-- {
		if os.IsPathSeparator(file[i]) {
			return file[i+1:]
		}
	}
	return file
}

// LogClosure is a closure that can be printed with %s to be used to
// generate expensive-to-create data for a detailed log level and avoid doing
// the work if the data isn't printed.
type LogClosure func() string

func (c LogClosure) String() string {
	return c()
}

// NewLogClosure casts a function to a LogClosure.
// See LogClosure for details.
func NewLogClosure(c func() string) LogClosure {
	return c
}
