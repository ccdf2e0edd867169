package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// levelSyncer returns the write syncer for one level's log file, rotated by
// lumberjack. When LogInTerminal is set, output also goes to stdout.
func levelSyncer(config Config, level string) zapcore.WriteSyncer {
	file := &lumberjack.Logger{
		Filename:   filepath.Join(config.Director, level+".log"),
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
		LocalTime:  true,
	}

	if config.LogInTerminal {
		return zapcore.NewMultiWriteSyncer(
			zapcore.AddSync(os.Stdout),
			zapcore.AddSync(file),
		)
	}
	return zapcore.AddSync(file)
}
