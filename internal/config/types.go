package config

// MailTransport selects how the relay delivers contact messages.
type MailTransport string

const (
	TransportSMTP MailTransport = "smtp"
	// TransportLog writes messages to the server log instead of sending them.
	TransportLog MailTransport = "log"
)

// Config is the top-level portfolio configuration, corresponding to .portfolio.yml.
type Config struct {
	Server ServerConfig `yaml:"server" koanf:"server"`
	Relay  RelayConfig  `yaml:"relay" koanf:"relay"`
	Mail   MailConfig   `yaml:"mail" koanf:"mail"`
	Site   SiteConfig   `yaml:"site" koanf:"site"`
	Log    LogConfig    `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	WasmPath        string `yaml:"wasm_path" koanf:"wasm_path"`
}

// RelayConfig holds the contact endpoint settings.
type RelayConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// MailConfig describes where relayed messages go.
type MailConfig struct {
	Transport MailTransport `yaml:"transport" koanf:"transport"`
	To        string        `yaml:"to" koanf:"to"`
	From      string        `yaml:"from" koanf:"from"`
	SMTP      SMTPConfig    `yaml:"smtp" koanf:"smtp"`
}

// SMTPConfig addresses the outbound SMTP server.
type SMTPConfig struct {
	Host     string `yaml:"host" koanf:"host"`
	Port     int    `yaml:"port" koanf:"port"`
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password,omitempty" koanf:"password"`
}

// SiteConfig drives the static site build.
type SiteConfig struct {
	Title      string   `yaml:"title" koanf:"title"`
	Author     string   `yaml:"author" koanf:"author"`
	ContentDir string   `yaml:"content_dir" koanf:"content_dir"`
	OutputDir  string   `yaml:"output_dir" koanf:"output_dir"`
	Include    []string `yaml:"include" koanf:"include"`
	Phrases    []string `yaml:"phrases" koanf:"phrases"`
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
	Human bool   `yaml:"human" koanf:"human"`
}
