package logsvc

import (
	"log"
	"reflect"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/lamms/lamms/core"
)

type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// expected fmt: msg | error, map[string]interface{}
// rollbar only reads extras from a plain map[string]interface{}, so named map types (echo.Map...) are converted.
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		newArgs = append(newArgs, toExtras(arg))
	}
	return newArgs
}

func toExtras(arg interface{}) interface{} {
	if _, ok := arg.(map[string]interface{}); ok {
		return arg
	}
	val := reflect.ValueOf(arg)
	if val.Kind() != reflect.Map || val.Type().Key().Kind() != reflect.String {
		return arg
	}
	extras := make(map[string]interface{}, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		extras[iter.Key().String()] = iter.Value().Interface()
	}
	return extras
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	printTo(l.std, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	printTo(l.std, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	printTo(l.std, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	printTo(l.std, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	printTo(l.std, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
