package config

import (
	"io"
	"log/slog"
	"os"
)

// SetupLog configures a global slog logger whose level follows LOG_LEVEL changes.
func SetupLog(cfg *Config) {
	SetupLogTo(os.Stderr, cfg)
}

// SetupLogTo is SetupLog with an explicit destination.
func SetupLogTo(w io.Writer, cfg *Config) {
	var lv slog.LevelVar
	lv.Set(cfg.GetLogLevel())
	cfg.OnLogLevelChange(func(level slog.Level) { lv.Set(level) })
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &lv})))
}
