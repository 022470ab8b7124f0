package logger

import (
	"log/slog"
	"os"

	"github.com/sunnykeerthi/service-center-user/configs"
)

func NewLogger(cfg *configs.Config) *slog.Logger {
	switch cfg.Env {
	case "dev":
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
}
