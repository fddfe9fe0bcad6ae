// Package journal maintains the application's activity log: an
// append-only text file that is kept size-bounded by discarding the
// oldest separator-delimited block once a threshold is exceeded, plus
// a Journal front-end that mirrors entries to a console logger.
package journal

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/logger"
)

// Separator delimits logical cycles in the log file and is the
// rotation boundary marker.
const Separator = "------------------------------------"

// timestampFormat matches the log line prefix format, millisecond precision.
const timestampFormat = "2006-01-02 15:04:05.000"

// BoundedLog is an append-only text file capped in size. Once the file
// grows past MaxBytes, the next Append drops the oldest complete block
// (the content from the first separator up to, but excluding, the
// second) before appending. The file therefore decays to at most one
// block over the threshold.
type BoundedLog struct {
	path     string
	maxBytes int64
}

// NewBoundedLog creates a bounded log writing to path with the given
// size threshold in bytes.
func NewBoundedLog(path string, maxBytes int64) *BoundedLog {
	return &BoundedLog{path: path, maxBytes: maxBytes}
}

// Path returns the underlying file path.
func (b *BoundedLog) Path() string {
	return b.path
}

// Empty reports whether the log file is missing or zero-sized.
func (b *BoundedLog) Empty() bool {
	info, err := os.Stat(b.path)
	return err != nil || info.Size() == 0
}

// Append writes text plus a trailing newline to the end of the file,
// trimming the oldest block first when the pre-append size exceeds the
// threshold. With fewer than two separators present no trimming occurs
// and the file is allowed to grow past the threshold.
func (b *BoundedLog) Append(text string) error {
	if info, err := os.Stat(b.path); err == nil && info.Size() > b.maxBytes {
		if err := b.trimOldestBlock(); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintln(f, text)
	return err
}

// trimOldestBlock removes the byte range from the first separator
// (inclusive) up to but excluding the second.
func (b *BoundedLog) trimOldestBlock() error {
	content, err := os.ReadFile(b.path)
	if err != nil {
		return err
	}

	sep := []byte(Separator)
	first := bytes.Index(content, sep)
	if first < 0 {
		return nil
	}
	rest := content[first+len(sep):]
	second := bytes.Index(rest, sep)
	if second < 0 {
		return nil
	}
	second += first + len(sep)

	trimmed := make([]byte, 0, first+len(content)-second)
	trimmed = append(trimmed, content[:first]...)
	trimmed = append(trimmed, content[second:]...)

	return os.WriteFile(b.path, trimmed, 0o644)
}

// Journal mirrors log entries to a console logger and the bounded file.
// File lines are timestamp-prefixed; separator lines are written bare.
type Journal struct {
	console logger.Logger
	file    *BoundedLog
	now     func() time.Time
}

// New creates a Journal writing to the given console logger and bounded file.
func New(console logger.Logger, file *BoundedLog) *Journal {
	return &Journal{
		console: console,
		file:    file,
		now:     time.Now,
	}
}

// File returns the underlying bounded log.
func (j *Journal) File() *BoundedLog {
	return j.file
}

// Info logs at info level and appends a timestamped line to the file.
func (j *Journal) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	j.console.Info("%s", msg)
	j.appendStamped(msg)
}

// Error logs at error level and appends a timestamped line to the file.
func (j *Journal) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	j.console.Error("%s", msg)
	j.appendStamped(msg)
}

// Separator appends a bare cycle separator line to the file.
func (j *Journal) Separator() {
	if err := j.file.Append(Separator); err != nil {
		j.console.Warn("failed to write log file %s: %v", j.file.Path(), err)
	}
}

func (j *Journal) appendStamped(msg string) {
	line := fmt.Sprintf("[%s]: %s", j.now().Format(timestampFormat), msg)
	if err := j.file.Append(line); err != nil {
		j.console.Warn("failed to write log file %s: %v", j.file.Path(), err)
	}
}
