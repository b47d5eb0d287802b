package app

import (
	"log/slog"
	"os"

	"github.com/rs/zerolog"

	"ruru-backoffice/internal/config"
	"ruru-backoffice/internal/logx"
)

// NewLogger returns the process logger: slog JSON by default, zerolog console
// output when LOG_FORMAT=console.
func NewLogger(cfg *config.Config) logx.Logger {
	if cfg != nil && cfg.LogFormat == "console" {
		return logx.NewConsole(os.Stdout, zerolog.DebugLevel)
	}
	return logx.NewJSON(os.Stdout, slog.LevelInfo)
}
