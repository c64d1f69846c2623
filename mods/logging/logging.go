package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/robfig/cron/v3"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Console        bool          `json:"console" default:"true" help:"enable console output"`
	Filename       string        `json:"filename" placeholder:"<path>" help:"log file path, '-' for stdout, '.' to discard"`
	Append         bool          `json:"append" help:"append to existing log file"`
	RotateSchedule string        `json:"rotateSchedule" help:"cron schedule to rotate log file"`
	MaxSize        int           `json:"maxSize" help:"log file max size in MB"`
	MaxBackups     int           `json:"maxBackups" help:"number of backup files"`
	MaxAge         int           `json:"maxAge" help:"how many days keep backup files"`
	Compress       bool          `json:"compress" help:"compress backup files"`
	Levels         []LevelConfig `json:"levels"`
	DefaultLevel   string        `json:"defaultLevel" enum:"TRACE,DEBUG,INFO,WARN,ERROR" default:"INFO"`
}

type LevelConfig struct {
	Pattern string `json:"pattern"`
	Level   string `json:"level" enum:"TRACE,DEBUG,INFO,WARN,ERROR" default:"INFO"`
}

var rotateCron = cron.New()

var defaultWriter []*logWriter

func Configure(cfg *Config) {
	for _, c := range cfg.Levels {
		levelConfig[c.Pattern] = ParseLogLevel(c.Level)
	}
	SetDefaultLevel(ParseLogLevel(cfg.DefaultLevel))

	if cfg.Filename == "." {
		defaultWriter = []*logWriter{}
	} else if cfg.Filename == "" || cfg.Filename == "-" {
		defaultWriter = []*logWriter{{Writer: os.Stdout, isTerm: true}}
	} else {
		lj := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		if !cfg.Append {
			lj.Rotate()
		}
		if len(cfg.RotateSchedule) > 0 {
			if _, err := rotateCron.AddFunc(cfg.RotateSchedule, func() { lj.Rotate() }); err == nil {
				go rotateCron.Run()
			} else {
				fmt.Fprintf(os.Stderr, "ERR logger rotate schedule %s", err.Error())
			}
		}
		if cfg.Console {
			defaultWriter = []*logWriter{
				{Writer: lj, isTerm: false},
				{Writer: os.Stdout, isTerm: true},
			}
		} else {
			defaultWriter = []*logWriter{{Writer: lj, isTerm: false}}
		}
	}
}

func GetLog(name string) Log {
	return &levelLogger{
		name:       name,
		level:      GetLevel(name),
		underlying: defaultWriter,
	}
}

func NewLog(name string, writer io.Writer) Log {
	return &levelLogger{
		name:       name,
		level:      GetLevel(name),
		underlying: []*logWriter{{Writer: writer, isTerm: false}},
	}
}

type logWriter struct {
	io.Writer
	isTerm bool
}

func init() {
	defaultWriter = []*logWriter{{Writer: os.Stdout, isTerm: true}}
}
