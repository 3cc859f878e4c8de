package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/moeezmir/portfolio/internal/validation"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: PORTFOLIO_MAIL__SMTP__HOST sets mail.smtp.host.
const EnvPrefix = "PORTFOLIO_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PORTFOLIO_*). A .env file next to the
// config file is loaded into the environment first, if present.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	dotenv := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", dotenv, err)
	}

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Lists from the file replace the defaults instead of merging into them.
	for key, list := range map[string]*[]string{
		"site.phrases": &cfg.Site.Phrases,
		"site.include": &cfg.Site.Include,
	} {
		if k.Exists(key) {
			*list = nil
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps PORTFOLIO_MAIL__TO to mail.to.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validTransports is the set of recognized mail transports.
var validTransports = map[MailTransport]bool{
	TransportSMTP: true,
	TransportLog:  true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if !strings.HasPrefix(c.Relay.Path, "/") {
		return fmt.Errorf("relay.path %q must start with /", c.Relay.Path)
	}

	if !validTransports[c.Mail.Transport] {
		return fmt.Errorf("invalid mail.transport %q: must be one of smtp, log", c.Mail.Transport)
	}

	if c.Mail.To != "" && !validation.Email(c.Mail.To) {
		return fmt.Errorf("invalid mail.to %q", c.Mail.To)
	}
	if c.Mail.From != "" && !validation.Email(c.Mail.From) {
		return fmt.Errorf("invalid mail.from %q", c.Mail.From)
	}

	if c.Mail.Transport == TransportSMTP {
		if c.Mail.To == "" {
			return fmt.Errorf("mail.to is required for the smtp transport")
		}
		if c.Mail.SMTP.Host == "" {
			return fmt.Errorf("mail.smtp.host is required for the smtp transport")
		}
		if c.Mail.SMTP.Port < 1 || c.Mail.SMTP.Port > 65535 {
			return fmt.Errorf("mail.smtp.port %d out of range", c.Mail.SMTP.Port)
		}
	}

	if c.Site.OutputDir == "" {
		return fmt.Errorf("site.output_dir is required")
	}

	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
