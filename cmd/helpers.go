package cmd

import (
	"fmt"

	"github.com/moeezmir/portfolio/internal/config"
	"github.com/moeezmir/portfolio/internal/logging"
	"github.com/moeezmir/portfolio/internal/progress"
	"github.com/moeezmir/portfolio/internal/relay"
	"github.com/moeezmir/portfolio/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `portfolio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger. --verbose forces debug level.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Options{Level: level, HumanReadable: cfg.Log.Human})
}

// newMailer creates the relay's mail transport from config.
func newMailer(cfg *config.Config, log *logging.Logger) relay.Mailer {
	switch cfg.Mail.Transport {
	case config.TransportSMTP:
		return relay.NewSMTPMailer(relay.SMTPConfig{
			Host:     cfg.Mail.SMTP.Host,
			Port:     cfg.Mail.SMTP.Port,
			Username: cfg.Mail.SMTP.Username,
			Password: cfg.Mail.SMTP.Password,
			Envelope: cfg.Mail.From,
		})
	default:
		return relay.NewLogMailer(log.Component("mail"))
	}
}

// newGenerator creates a site generator from config. An empty outputDir
// keeps the configured one.
func newGenerator(cfg *config.Config, outputDir string, reporter progress.Reporter) *site.SiteGenerator {
	if outputDir == "" {
		outputDir = cfg.Site.OutputDir
	}
	g := site.NewSiteGenerator(cfg.Site.ContentDir, outputDir, site.Meta{
		Title:     cfg.Site.Title,
		Author:    cfg.Site.Author,
		RelayPath: cfg.Relay.Path,
		Phrases:   cfg.Site.Phrases,
	})
	if len(cfg.Site.Include) > 0 {
		g.Include = cfg.Site.Include
	}
	g.WasmPath = cfg.Server.WasmPath
	g.Reporter = reporter
	return g
}
