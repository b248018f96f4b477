package main

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/charmbracelet/lipgloss"

	"github.com/vadimtrunov/reelview/internal/catalog"
	"github.com/vadimtrunov/reelview/internal/config"
	"github.com/vadimtrunov/reelview/internal/httpclient"
)

// Lipgloss styles used across commands.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	styleStar    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")).
			MarginBottom(1)
)

// loadConfig loads and validates the configuration file.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// fileLogger sets up logging into the configured log file so that the
// terminal stays free for the TUI and command output. The returned closer
// must be called on exit.
func fileLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	f, err := config.OpenLogFile(cfg.App.LogFile)
	if err != nil {
		return nil, nil, err
	}
	logger := config.SetupLogger(cfg.App.LogLevel, f)
	return logger, func() { _ = f.Close() }, nil
}

// newCatalog creates the API client and image URL builder from config.
func newCatalog(cfg *config.Config, logger *slog.Logger) (*catalog.Client, catalog.Images) {
	hc := httpclient.DefaultConfig()
	hc.MaxAttempts = cfg.API.MaxAttempts
	hc.Timeout = cfg.API.Timeout()
	client := catalog.New(cfg.API.BaseURL, hc, logger)
	images := catalog.NewImages(cfg.Images.BaseURL, cfg.Images.Placeholder, cfg.API.BaseURL)
	logger.Info("catalog client initialized", slog.String("url", sanitizeURL(cfg.API.BaseURL)))
	return client, images
}

// sanitizeURL strips credentials, query params, and fragment from a URL for safe logging.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.Scheme == "" {
		return "<redacted>"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
