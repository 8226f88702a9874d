// Package rlog is the renderer's thin wrapper around github.com/op/go-logging,
// giving every package a named, levelled logger without exposing the
// underlying library's types at call sites.
package rlog

import (
	"io"
	"os"

	logging "github.com/op/go-logging"
)

type Level logging.Level

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is a named logger scoped to one package or component.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns a logger scoped to name, used as the %{module} field.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all logger output to w.
func SetSink(w io.Writer) {
	backend := logging.NewLogBackend(w, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(logging.INFO, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel raises or lowers the global logging verbosity.
func SetLevel(level Level) {
	var loggingLevel logging.Level
	switch level {
	case Debug:
		loggingLevel = logging.DEBUG
	case Info:
		loggingLevel = logging.INFO
	case Notice:
		loggingLevel = logging.NOTICE
	case Warning:
		loggingLevel = logging.WARNING
	case Error:
		loggingLevel = logging.ERROR
	}
	leveledBackend.SetLevel(loggingLevel, "")
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
