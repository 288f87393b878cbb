package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/networth/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelMarks = map[log.Level]struct {
	mark  string
	color lipgloss.AdaptiveColor
}{
	log.DebugLevel: {"DBG", lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#B39DDB"}},
	log.InfoLevel:  {"INF", lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}},
	log.WarnLevel:  {"WRN", lipgloss.AdaptiveColor{Light: "#E0A100", Dark: "#FFD54F"}},
	log.ErrorLevel: {"ERR", lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#FF6B6B"}},
}

func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, m := range levelMarks {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(m.mark).
			Bold(true).
			Padding(0, 1).
			Foreground(m.color)
	}
	keyColor := levelMarks[log.DebugLevel].color
	for _, key := range []string{"service", "user_id", "error", "method", "path"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(keyColor)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(levelMarks[log.ErrorLevel].color)
	return styles
}

// setupLogger builds the process logger and installs it as the slog default.
func setupLogger(cfg *config.Log) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
	}
	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Level < 0,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	handler.SetStyles(logStyles())

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
