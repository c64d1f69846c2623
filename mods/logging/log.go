package logging

import (
	"fmt"
	"strings"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

type Log interface {
	TraceEnabled() bool
	Trace(...any)
	Tracef(format string, args ...any)
	DebugEnabled() bool
	Debug(...any)
	Debugf(format string, args ...any)
	InfoEnabled() bool
	Info(...any)
	Infof(format string, args ...any)
	WarnEnabled() bool
	Warn(...any)
	Warnf(format string, args ...any)
	ErrorEnabled() bool
	Error(...any)
	Errorf(format string, args ...any)

	SetLevel(level Level)
	Level() Level
}

type levelLogger struct {
	name       string
	level      Level
	underlying []*logWriter
}

func (l *levelLogger) SetLevel(level Level) { l.level = level }
func (l *levelLogger) Level() Level         { return l.level }

func (l *levelLogger) TraceEnabled() bool { return l.level <= LevelTrace }
func (l *levelLogger) DebugEnabled() bool { return l.level <= LevelDebug }
func (l *levelLogger) InfoEnabled() bool  { return l.level <= LevelInfo }
func (l *levelLogger) WarnEnabled() bool  { return l.level <= LevelWarn }
func (l *levelLogger) ErrorEnabled() bool { return l.level <= LevelError }

func (l *levelLogger) Trace(m ...any) { l._log(LevelTrace, m) }
func (l *levelLogger) Debug(m ...any) { l._log(LevelDebug, m) }
func (l *levelLogger) Info(m ...any)  { l._log(LevelInfo, m) }
func (l *levelLogger) Warn(m ...any)  { l._log(LevelWarn, m) }
func (l *levelLogger) Error(m ...any) { l._log(LevelError, m) }

func (l *levelLogger) Tracef(format string, args ...any) { l._logf(LevelTrace, format, args) }
func (l *levelLogger) Debugf(format string, args ...any) { l._logf(LevelDebug, format, args) }
func (l *levelLogger) Infof(format string, args ...any)  { l._logf(LevelInfo, format, args) }
func (l *levelLogger) Warnf(format string, args ...any)  { l._logf(LevelWarn, format, args) }
func (l *levelLogger) Errorf(format string, args ...any) { l._logf(LevelError, format, args) }

const (
	yellow = "\033[90;43m"
	red    = "\033[97;41m"
	reset  = "\033[0m"
)

var (
	warnCounter  gometrics.Counter
	errorCounter gometrics.Counter
	totalCounter gometrics.Counter
)

func init() {
	totalCounter = gometrics.NewRegisteredCounter("log.total", gometrics.DefaultRegistry)
	warnCounter = gometrics.NewRegisteredCounter("log.warns", gometrics.DefaultRegistry)
	errorCounter = gometrics.NewRegisteredCounter("log.errors", gometrics.DefaultRegistry)
}

func (l *levelLogger) _log(lvl Level, args []any) {
	if lvl < l.level {
		return
	}
	toks := make([]string, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			toks[i] = s
		} else {
			toks[i] = fmt.Sprintf("%v", a)
		}
	}
	l.write(lvl, strings.Join(toks, " "))
}

func (l *levelLogger) _logf(lvl Level, format string, args []any) {
	if lvl < l.level {
		return
	}
	l.write(lvl, fmt.Sprintf(format, args...))
}

func (l *levelLogger) write(lvl Level, msg string) {
	totalCounter.Inc(1)
	if lvl == LevelWarn {
		warnCounter.Inc(1)
	} else if lvl == LevelError {
		errorCounter.Inc(1)
	}

	colorBegin, colorEnd := "", ""
	if lvl == LevelWarn {
		colorBegin, colorEnd = yellow, reset
	} else if lvl == LevelError {
		colorBegin, colorEnd = red, reset
	}
	ts := time.Now().Format("2006/01/02 15:04:05.000")
	levelName := fmt.Sprintf("%-5s", logLevelNames[lvl])

	for _, w := range l.underlying {
		var line string
		if w.isTerm {
			line = fmt.Sprintf("%s %s%s%s %-12s %s\n", ts, colorBegin, levelName, colorEnd, l.name, msg)
		} else {
			line = fmt.Sprintf("%s %s %-12s %s\n", ts, levelName, l.name, msg)
		}
		w.Write([]byte(line))
	}
}
