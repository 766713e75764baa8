// Package host integrates the UI with a mini-app host that embeds it: the
// host's theme colors are applied and readiness is signalled once the UI is
// up. Everything here is cosmetic; failures are logged, never returned to
// the user.
package host

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/notes/internal/config"
	"github.com/aretw0/notes/internal/styles"
)

// EnvHost names the embedding host. Any non-empty value enables host mode.
const EnvHost = "NOTES_HOST"

// Host describes the embedding environment.
type Host struct {
	Name            string
	Enabled         bool
	HeaderColor     string
	BackgroundColor string
	ReadyFile       string

	logger *slog.Logger
}

// Detect builds a Host from the configuration and the environment.
func Detect(cfg config.HostConfig, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	name := os.Getenv(EnvHost)
	return &Host{
		Name:            name,
		Enabled:         cfg.Enabled || name != "",
		HeaderColor:     cfg.HeaderColor,
		BackgroundColor: cfg.BackgroundColor,
		ReadyFile:       cfg.ReadyFile,
		logger:          logger,
	}
}

// ApplyTheme pushes the host colors into the UI styles. No-op outside a host.
func (h *Host) ApplyTheme() {
	if h == nil || !h.Enabled {
		return
	}
	styles.ApplyHostColors(h.HeaderColor, h.BackgroundColor)
	h.logger.Debug("host theme applied", "host", h.Name, "header", h.HeaderColor, "background", h.BackgroundColor)
}

// Ready tells the host the UI finished starting by writing "ready" to the
// ready file. Errors are logged and reported to the caller for tests.
func (h *Host) Ready() error {
	if h == nil || !h.Enabled || h.ReadyFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.ReadyFile), 0755); err != nil {
		h.logger.Warn("host ready signal failed", "error", err)
		return fmt.Errorf("failed to signal ready: %w", err)
	}
	if err := os.WriteFile(h.ReadyFile, []byte("ready\n"), 0644); err != nil {
		h.logger.Warn("host ready signal failed", "error", err)
		return fmt.Errorf("failed to signal ready: %w", err)
	}
	h.logger.Debug("host ready signalled", "file", h.ReadyFile)
	return nil
}
