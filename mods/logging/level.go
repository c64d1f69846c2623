package logging

import (
	"path"
	"strings"
)

type Level int

const (
	LevelAll Level = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var logLevelNames = []string{"ALL", "TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

func ParseLogLevel(name string) Level {
	switch strings.ToUpper(name) {
	default:
		return LevelAll
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE":
		return LevelError + 1
	}
}

func LogLevelName(level Level) string {
	if level >= 0 && int(level) < len(logLevelNames) {
		return logLevelNames[level]
	}
	return "UNKNOWN"
}

var levelConfig = make(map[string]Level)
var levelDefault = LevelInfo

func SetDefaultLevel(lvl Level) {
	levelDefault = lvl
}

func DefaultLevel() Level {
	return levelDefault
}

func SetLevel(name string, lvl Level) {
	levelConfig[name] = lvl
}

// GetLevel resolves the level for a logger name; the longest matching
// pattern wins, patterns follow path.Match syntax.
func GetLevel(name string) Level {
	var matchedPattern string
	var matchedLevel Level
	for pattern, level := range levelConfig {
		if ok, err := path.Match(pattern, name); ok && err == nil {
			if len(matchedPattern) < len(pattern) {
				matchedPattern = pattern
				matchedLevel = level
			}
		}
	}
	if matchedPattern != "" {
		return matchedLevel
	}
	return levelDefault
}
