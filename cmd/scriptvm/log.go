package main

import (
	"os"
	"path/filepath"

	"github.com/kaspanet/scriptvm/infrastructure/logger"
)

const (
	defaultLogFilename    = "scriptvm.log"
	defaultErrLogFilename = "scriptvm_err.log"
)

var log = logger.RegisterSubSystem("SVMC")

// stderrWriter sends log entries to stderr without closing it with the
// backend.
type stderrWriter struct{}

func (stderrWriter) Write(p []byte) (int, error) {
	return os.Stderr.Write(p)
}

func (stderrWriter) Close() error {
	return nil
}

// initLog starts the logging backend, writing to rotated files in the log
// directory when one is configured and to stderr otherwise, and applies the
// configured log levels.
func initLog(cfg *configFlags) error {
	if cfg.LogDir != "" {
		logger.InitLog(filepath.Join(cfg.LogDir, defaultLogFilename),
			filepath.Join(cfg.LogDir, defaultErrLogFilename))
	} else {
		err := logger.BackendLog.AddLogWriter(stderrWriter{}, logger.LevelTrace)
		if err != nil {
			return err
		}
		err = logger.BackendLog.Run()
		if err != nil {
			return err
		}
	}

	return logger.ParseAndSetDebugLevels(cfg.LogLevel)
}
