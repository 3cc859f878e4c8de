package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/moeezmir/portfolio/internal/ui/typing"
	"github.com/moeezmir/portfolio/internal/validation"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Let's configure your portfolio.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site title and author.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.Site.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.Site.Title = title

	authorPrompt := promptui.Prompt{
		Label: "Your name",
	}
	author, err := authorPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("author: %w", err)
	}
	cfg.Site.Author = author

	// 2. Hero phrases.
	phrasesPrompt := promptui.Prompt{
		Label:   "Hero phrases (comma-separated)",
		Default: strings.Join(typing.DefaultPhrases, ", "),
	}
	phrases, err := phrasesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("phrases: %w", err)
	}
	if p := splitAndTrim(phrases); len(p) > 0 {
		cfg.Site.Phrases = p
	}

	// 3. Where contact messages go.
	toPrompt := promptui.Prompt{
		Label:    "Deliver contact messages to (email)",
		Validate: validateEmail,
	}
	to, err := toPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("destination address: %w", err)
	}
	cfg.Mail.To = to

	// 4. Transport.
	transportPrompt := promptui.Select{
		Label: "Mail transport",
		Items: []string{
			"log:  print messages to the server log (development)",
			"smtp: send through an SMTP server",
		},
	}
	idx, _, err := transportPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("transport selection: %w", err)
	}
	if idx == 1 {
		cfg.Mail.Transport = TransportSMTP
		if err := promptSMTP(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	if cfg.Mail.Transport == TransportSMTP && os.Getenv(EnvPrefix+"MAIL__SMTP__PASSWORD") == "" {
		fmt.Printf("Note: set %sMAIL__SMTP__PASSWORD in your environment or .env file.\n", EnvPrefix)
	}
	return cfg, nil
}

func promptSMTP(cfg *Config) error {
	hostPrompt := promptui.Prompt{
		Label: "SMTP host",
		Validate: func(s string) error {
			if s == "" {
				return errors.New("host is required")
			}
			return nil
		},
	}
	host, err := hostPrompt.Run()
	if err != nil {
		return fmt.Errorf("smtp host: %w", err)
	}
	cfg.Mail.SMTP.Host = host

	portPrompt := promptui.Prompt{
		Label:   "SMTP port",
		Default: strconv.Itoa(cfg.Mail.SMTP.Port),
		Validate: func(s string) error {
			if _, err := strconv.Atoi(s); err != nil {
				return errors.New("port must be a number")
			}
			return nil
		},
	}
	port, err := portPrompt.Run()
	if err != nil {
		return fmt.Errorf("smtp port: %w", err)
	}
	cfg.Mail.SMTP.Port, _ = strconv.Atoi(port)

	userPrompt := promptui.Prompt{
		Label: "SMTP username (blank for none)",
	}
	user, err := userPrompt.Run()
	if err != nil {
		return fmt.Errorf("smtp username: %w", err)
	}
	cfg.Mail.SMTP.Username = user

	fromPrompt := promptui.Prompt{
		Label:    "Envelope sender address",
		Default:  cfg.Mail.To,
		Validate: validateEmail,
	}
	from, err := fromPrompt.Run()
	if err != nil {
		return fmt.Errorf("envelope sender: %w", err)
	}
	cfg.Mail.From = from
	return nil
}

func validateEmail(s string) error {
	if !validation.Email(s) {
		return errors.New("not a valid email address")
	}
	return nil
}
