package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logfile names under the configured log directory
const (
	logFileStandard = "firmtown.log"
	logFileErrors   = "errors.log"
)

// DefaultLogger initializes the registry logger; without a log directory
// everything goes to the console, otherwise errors and regular entries are
// split into JSON logfiles, mirrored to the console in debug mode
func DefaultLogger(debugMode bool, logDir string) (*zap.Logger, error) {
	errLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	stdLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl < zapcore.ErrorLevel
	})

	consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	consoleCores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), errLevel),
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), stdLevel),
	}

	logDir = strings.TrimSpace(logDir)
	if logDir == "" {
		return zap.New(zapcore.NewTee(consoleCores...)), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create log directory: %s", logDir)
	}

	openLogfile := func(name string) (zapcore.WriteSyncer, error) {
		f, err := os.OpenFile(filepath.Join(logDir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open logfile: %s", name)
		}

		return zapcore.Lock(f), nil
	}

	errFile, err := openLogfile(logFileErrors)
	if err != nil {
		return nil, err
	}

	stdFile, err := openLogfile(logFileStandard)
	if err != nil {
		return nil, err
	}

	fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(fileEncoder, errFile, errLevel),
		zapcore.NewCore(fileEncoder, stdFile, stdLevel),
	}

	// debug mode mirrors everything to the console alongside the logfiles
	if debugMode {
		cores = append(cores, consoleCores...)
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
