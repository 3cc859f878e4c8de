package config

import "github.com/moeezmir/portfolio/internal/ui/typing"

// DefaultConfig returns a Config with sensible defaults. Mail goes to the
// log until a destination and SMTP server are configured.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     8080,
			WasmPath: "public/app.wasm",
		},
		Relay: RelayConfig{
			Path: "/contact",
		},
		Mail: MailConfig{
			Transport: TransportLog,
			SMTP: SMTPConfig{
				Port: 587,
			},
		},
		Site: SiteConfig{
			Title:      "Portfolio",
			ContentDir: "content",
			OutputDir:  "public",
			Include:    []string{"**/*.md"},
			Phrases:    append([]string(nil), typing.DefaultPhrases...),
		},
		Log: LogConfig{
			Level: "info",
			Human: true,
		},
	}
}
