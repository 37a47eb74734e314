package logsvc

import (
	"fmt"
	"log"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/videoteca/core"
	"github.com/trezcool/videoteca/core/auth"
)

// RollbarLogger reports to Rollbar and mirrors every message to a std logger.
// Debug messages are only printed in debug mode.
type RollbarLogger struct {
	std    *log.Logger
	client *rollbar.Client
	debug  bool
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	client := rollbar.New(conf.RollbarToken, conf.Env, conf.Build, conf.Server.Host, "")
	client.SetStackTracer(errors.StackTracer)
	client.SetEnabled(conf.RollbarToken != "")
	return &RollbarLogger{std: std, client: client, debug: conf.Debug}
}

// Enable toggles the reporting to Rollbar. Without a token nothing is ever reported.
func (l *RollbarLogger) Enable(enabled bool) {
	l.client.SetEnabled(enabled && l.client.Token() != "")
}

// prepare extracts the auth.Claims of the current admin from args and returns the rollbar arguments.
// expected fmt: msg | error, map[string]interface{}, auth.Claims
func (l *RollbarLogger) prepare(msg string, args []interface{}) (rbArgs []interface{}, admin string) {
	rbArgs = make([]interface{}, 0, len(args)+1)
	rbArgs = append(rbArgs, msg)
	for _, arg := range args {
		claims, ok := arg.(auth.Claims)
		if !ok {
			rbArgs = append(rbArgs, arg)
			continue
		}
		if admin == "" && claims.Subject != "" {
			admin = claims.Subject
		}
	}

	if admin != "" {
		l.client.SetPerson(admin, admin, "")
	} else {
		l.client.ClearPerson()
	}
	return rbArgs, admin
}

// print writes a single line: `[LEVEL] msg | arg | ... | admin=<username>`
func (l *RollbarLogger) print(level, msg string, args []interface{}, admin string) {
	var b strings.Builder
	b.WriteString("[" + level + "] " + msg)
	for _, arg := range args {
		if _, ok := arg.(auth.Claims); ok {
			continue
		}
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%v", arg))
	}
	if admin != "" {
		b.WriteString(" | admin=" + admin)
	}
	l.std.Print(b.String())
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	if !l.debug {
		return
	}
	rbArgs, admin := l.prepare(msg, args)
	l.client.Debug(rbArgs...)
	l.print("DEBUG", msg, args, admin)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	rbArgs, admin := l.prepare(msg, args)
	l.client.Info(rbArgs...)
	l.print("INFO", msg, args, admin)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	rbArgs, admin := l.prepare(msg, args)
	l.client.Warning(rbArgs...)
	l.print("WARN", msg, args, admin)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	rbArgs, admin := l.prepare(msg, args)
	l.client.Error(rbArgs...)
	l.print("ERROR", msg, args, admin)
}

// Fatal reports msg, waits for the pending reports, then exits.
func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	rbArgs, admin := l.prepare(msg, args)
	l.client.Critical(rbArgs...)
	l.print("FATAL", msg, args, admin)
	l.client.Wait()
	l.std.Fatal(msg)
}
