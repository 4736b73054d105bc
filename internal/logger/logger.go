// internal/logger/logger.go
package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rakaarfi/roster-system-be/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogger configures the global zerolog logger from cfg.
// It writes to the console (JSON or human-readable) and optionally to a
// rotating log file via lumberjack.
//
// Returns the file writer as an io.Closer when file logging is enabled, nil
// otherwise. Close it in main with `defer`.
func SetupLogger(cfg *config.Config) io.Closer {
	closer, w := buildWriter(cfg, os.Stderr)

	// Timestamp + caller (file:line) di setiap entry
	log.Logger = zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger()

	log.Info().Msgf("Global logger initialized with level: %s", zerolog.GlobalLevel().String())
	return closer
}

func buildWriter(cfg *config.Config, console io.Writer) (io.Closer, io.Writer) {
	// --- Level ---
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
		log.Warn().Str("log_level", cfg.LogLevel).Msg("Invalid or missing LOG_LEVEL, using info")
	}
	zerolog.SetGlobalLevel(level)

	// --- Console ---
	var writers []io.Writer
	if cfg.LogFormat == "json" {
		writers = append(writers, console)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339})
	}

	// --- File with rotation ---
	var fileCloser io.Closer
	if cfg.LogFileEnabled {
		path := cfg.LogFilePath
		if path == "" {
			path = "./logs/app.log"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o744); err != nil {
			log.Error().Err(err).Str("path", path).Msg("Can't create log directory, file logging disabled")
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   path,
				MaxSize:    positiveOr(cfg.LogFileMaxSizeMB, 100), // megabytes
				MaxBackups: positiveOr(cfg.LogFileMaxBackups, 5),
				MaxAge:     positiveOr(cfg.LogFileMaxAgeDays, 30), // days
				Compress:   cfg.LogFileCompress,
			}
			writers = append(writers, fileWriter)
			fileCloser = fileWriter

			log.Info().
				Str("path", path).
				Int("max_size_mb", fileWriter.MaxSize).
				Int("max_backups", fileWriter.MaxBackups).
				Int("max_age_days", fileWriter.MaxAge).
				Bool("compress", fileWriter.Compress).
				Msg("File logging enabled with rotation")
		}
	}

	return fileCloser, zerolog.MultiLevelWriter(writers...)
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
