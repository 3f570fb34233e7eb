package logsvc

import (
	"log"
	"os"

	"github.com/lamms/lamms/core"
)

// StdLogger only writes to a standard logger. Used in DEV & TEST.
type StdLogger struct {
	std *log.Logger
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(std *log.Logger) *StdLogger {
	return &StdLogger{std: std}
}

// New returns the logger matching `conf`: Rollbar when a token is configured, std otherwise.
func New(prefix string, conf *core.Config) core.Logger {
	std := log.New(os.Stdout, prefix, log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if conf.RollbarToken == "" || conf.TestMode {
		return NewStdLogger(std)
	}
	l := NewRollbarLogger(std, conf)
	l.Enable(true)
	return l
}

func printTo(std *log.Logger, msg string, args []interface{}) {
	std.Println(msg)
	for _, arg := range args {
		std.Printf("%+v\n", arg)
	}
}

func (l StdLogger) Debug(msg string, args ...interface{}) { printTo(l.std, "DEBUG: "+msg, args) }
func (l StdLogger) Info(msg string, args ...interface{})  { printTo(l.std, "INFO: "+msg, args) }
func (l StdLogger) Warn(msg string, args ...interface{})  { printTo(l.std, "WARN: "+msg, args) }
func (l StdLogger) Error(msg string, args ...interface{}) { printTo(l.std, "ERROR: "+msg, args) }

func (l StdLogger) Fatal(msg string, args ...interface{}) {
	printTo(l.std, "FATAL: "+msg, args)
	os.Exit(1)
}
