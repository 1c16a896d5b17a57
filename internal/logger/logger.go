// Package logger is a package-level singleton logger with a background
// goroutine draining a message channel. It is the sole destination for
// progress output (prime admission counts, sort phases, gap detections with
// the current shape parameter or prime ceiling, completion) — internal/driver
// never calls fmt directly.
package logger

import (
	"fmt"
	"os"
	"time"
)

// Log levels, most to least severe.
const (
	CRITICAL = iota
	ERROR
	WARN
	INFO
	DBG
)

const (
	cmdRotate = iota
)

type logger struct {
	msgChan chan string
	cmdChan chan int
	out     *os.File
	started time.Time
	level   int
}

var inst = newLogger()

func newLogger() *logger {
	l := &logger{
		msgChan: make(chan string),
		cmdChan: make(chan int),
		out:     os.Stdout,
		started: time.Now(),
		level:   INFO,
	}
	go func() {
		for {
			select {
			case msg := <-l.msgChan:
				l.out.WriteString(msg)
			case cmd := <-l.cmdChan:
				switch cmd {
				case cmdRotate:
					l.rotate()
				}
			}
		}
	}()
	return l
}

// rotate renames the current log file aside (suffixed with the timestamp
// it was opened) and opens a fresh one in its place. A no-op when logging
// to stdout, since there is no file to rotate.
func (l *logger) rotate() {
	if l.out == os.Stdout {
		l.out.WriteString(format(WARN, "log rotation requested, but logging to stdout\n"))
		return
	}
	name := l.out.Name()
	l.out.Close()
	os.Rename(name, name+"."+l.started.Format(time.RFC3339))
	f, err := os.Create(name)
	if err != nil {
		l.out = os.Stdout
		l.out.WriteString(format(ERROR, fmt.Sprintf("log rotation failed, falling back to stdout: %v\n", err)))
		return
	}
	l.out = f
	l.started = time.Now()
}

// Println logs line at level, prefixed with a timestamp and level tag, iff
// level is at or above the currently configured verbosity.
func Println(level int, line string) {
	if level <= inst.level {
		inst.msgChan <- format(level, line+"\n")
	}
}

// Printf is the Printf-style counterpart of Println.
func Printf(level int, format string, v ...interface{}) {
	Println(level, fmt.Sprintf(format, v...))
}

func format(level int, line string) string {
	ts := time.Now().Format(time.Stamp)
	return fmt.Sprintf("%s [%s] %s", ts, tag(level), line)
}

func tag(level int) string {
	switch level {
	case CRITICAL:
		return "CRIT"
	case ERROR:
		return "ERR "
	case WARN:
		return "WARN"
	case INFO:
		return "INFO"
	case DBG:
		return "DBG "
	}
	return "????"
}

// SetLevel sets the minimum severity that will be emitted.
func SetLevel(level int) {
	inst.level = level
}

// SetLevelFromName sets the minimum severity from its symbolic name,
// returning false (and leaving the level unchanged) for an unrecognized
// name.
func SetLevelFromName(name string) bool {
	switch name {
	case "CRITICAL":
		inst.level = CRITICAL
	case "ERROR":
		inst.level = ERROR
	case "WARN":
		inst.level = WARN
	case "INFO":
		inst.level = INFO
	case "DBG":
		inst.level = DBG
	default:
		return false
	}
	return true
}

// Level returns the currently configured minimum severity.
func Level() int { return inst.level }

// LogToFile switches output from stdout to filename, creating or
// truncating it. Returns false (leaving output on stdout) if the file
// cannot be created.
func LogToFile(filename string) bool {
	f, err := os.Create(filename)
	if err != nil {
		Println(ERROR, fmt.Sprintf("can't enable file-based logging: %v", err))
		return false
	}
	inst.out = f
	inst.started = time.Now()
	Println(INFO, fmt.Sprintf("file-based logging to %q", filename))
	return true
}

// Rotate asks the logging goroutine to rename the current log file aside
// and start a fresh one. A no-op when logging to stdout.
func Rotate() {
	inst.cmdChan <- cmdRotate
}
