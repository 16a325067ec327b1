package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Log          LogConfig
	HTTP         HTTPConfig
	ERP          ERPConfig
	Mail         MailConfig
	Security     SecurityConfig
	Confirmation ConfirmationConfig
	Event        EventConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// ERPConfig holds the connection settings for the S/4HANA OData APIs.
type ERPConfig struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// MailConfig holds SMTP settings for confirmation emails.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Subject  string
}

// SecurityConfig holds the token encryption key material.
type SecurityConfig struct {
	PrivateKeyPath string
}

// ConfirmationConfig tunes the address confirmation workflow.
type ConfirmationConfig struct {
	// URLTemplate is the confirmation link sent to contacts; %s is
	// replaced with the sealed token.
	URLTemplate string
	// TokenValidityDays is how long a confirmation link stays usable.
	TokenValidityDays int
	// ContactFunction and ContactDepartment select the preferred
	// recipient among a company's contact persons.
	ContactFunction   string
	ContactDepartment string
}

// EventConfig holds the Redis stream the business partner events
// arrive on.
type EventConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	Stream   string
	Group    string
	Consumer string
	Block    time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ADDRCONF_ prefix (e.g., ADDRCONF_ERP_CLIENT_SECRET)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("ADDRCONF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		ERP: ERPConfig{
			BaseURL:      v.GetString("erp.base_url"),
			TokenURL:     v.GetString("erp.token_url"),
			ClientID:     v.GetString("erp.client_id"),
			ClientSecret: v.GetString("erp.client_secret"),
			Timeout:      v.GetDuration("erp.timeout"),
		},
		Mail: MailConfig{
			Host:     v.GetString("mail.host"),
			Port:     v.GetInt("mail.port"),
			Username: v.GetString("mail.username"),
			Password: v.GetString("mail.password"),
			From:     v.GetString("mail.from"),
			Subject:  v.GetString("mail.subject"),
		},
		Security: SecurityConfig{
			PrivateKeyPath: v.GetString("security.private_key_path"),
		},
		Confirmation: ConfirmationConfig{
			URLTemplate:       v.GetString("confirmation.url_template"),
			TokenValidityDays: v.GetInt("confirmation.token_validity_days"),
			ContactFunction:   v.GetString("confirmation.contact_function"),
			ContactDepartment: v.GetString("confirmation.contact_department"),
		},
		Event: EventConfig{
			Enabled:  v.GetBool("event.enabled"),
			Host:     v.GetString("event.host"),
			Port:     v.GetInt("event.port"),
			Password: v.GetString("event.password"),
			DB:       v.GetInt("event.db"),
			Stream:   v.GetString("event.stream"),
			Group:    v.GetString("event.group"),
			Consumer: v.GetString("event.consumer"),
			Block:    v.GetDuration("event.block"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "addrconfirm"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cfg.ERP.Timeout == 0 {
		cfg.ERP.Timeout = 30 * time.Second
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 587
	}
	if cfg.Mail.Subject == "" {
		cfg.Mail.Subject = "Please confirm your address data"
	}
	if cfg.Confirmation.TokenValidityDays == 0 {
		cfg.Confirmation.TokenValidityDays = 4
	}
	if cfg.Confirmation.ContactFunction == "" {
		cfg.Confirmation.ContactFunction = "0005"
	}
	if cfg.Confirmation.ContactDepartment == "" {
		cfg.Confirmation.ContactDepartment = "0007"
	}
	if cfg.Event.Host == "" {
		cfg.Event.Host = "localhost"
	}
	if cfg.Event.Port == 0 {
		cfg.Event.Port = 6379
	}
	if cfg.Event.Stream == "" {
		cfg.Event.Stream = "businesspartner-events"
	}
	if cfg.Event.Group == "" {
		cfg.Event.Group = "addrconfirm"
	}
	if cfg.Event.Consumer == "" {
		cfg.Event.Consumer = "addrconfirm-1"
	}
	if cfg.Event.Block == 0 {
		cfg.Event.Block = 5 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Confirmation.TokenValidityDays < 0 {
		return fmt.Errorf("confirmation.token_validity_days cannot be negative")
	}

	if c.Confirmation.URLTemplate != "" && !strings.Contains(c.Confirmation.URLTemplate, "%s") {
		return fmt.Errorf("confirmation.url_template must contain a %%s placeholder for the token")
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.ERP.BaseURL == "" {
			return fmt.Errorf("erp.base_url is required in production")
		}
		if c.ERP.ClientID == "" || c.ERP.ClientSecret == "" {
			return fmt.Errorf("erp.client_id and erp.client_secret are required in production")
		}
		if c.Security.PrivateKeyPath == "" {
			return fmt.Errorf("security.private_key_path is required in production")
		}
		if c.Confirmation.URLTemplate == "" {
			return fmt.Errorf("confirmation.url_template is required in production")
		}
		if c.Mail.Host == "" {
			return fmt.Errorf("mail.host is required in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// Addr returns the Redis address the event consumer connects to.
func (e *EventConfig) Addr() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}
