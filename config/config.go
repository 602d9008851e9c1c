package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Lead pipeline
	Meta         MetaConfig
	Graph        GraphConfig
	WhatsApp     WhatsAppConfig
	GoogleSheets GoogleSheetsConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	PrivacyContact  string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// MetaConfig covers the webhook handshake and the lead-detail lookup.
type MetaConfig struct {
	VerifyToken     string
	AccessToken     string
	GraphAPIVersion string
	GraphBaseURL    string
}

// GraphConfig tunes outbound Graph API calls.
type GraphConfig struct {
	Timeout           time.Duration
	RequestsPerSecond float64
}

type WhatsAppConfig struct {
	PhoneID      string
	APIVersion   string
	TemplateName string
	LanguageCode string
	AdminPhone   string
	ClientPhone  string
	MyPhone      string
}

// Recipients returns the numbers notified for every lead: the client first,
// then our own number (the admin number stands in when ours is unset).
func (c WhatsAppConfig) Recipients() []string {
	self := c.MyPhone
	if self == "" {
		self = c.AdminPhone
	}

	var out []string
	for _, n := range []string{c.ClientPhone, self} {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

type GoogleSheetsConfig struct {
	CredentialsPath string
	SheetName       string
	CacheTTL        time.Duration
}

// Load loads configuration using Viper.
// An optional .env file is read first; config.yaml is searched in ./config, ., /etc/app/.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.PrivacyContact = stringWithOverride("http_server.privacy_contact", "privacy_contact")
	cfg.HTTPServer.ShutdownTimeout = viper.GetDuration("http_server.shutdown_timeout")
	if port := viper.GetInt("port"); port != 0 {
		cfg.HTTPServer.Port = port
	}
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Meta
	cfg.Meta.VerifyToken = stringWithOverride("meta.verify_token", "verify_token")
	cfg.Meta.AccessToken = stringWithOverride("meta.access_token", "page_access_token")
	cfg.Meta.GraphAPIVersion = stringWithOverride("meta.graph_api_version", "graph_api_version")
	cfg.Meta.GraphBaseURL = viper.GetString("meta.graph_base_url")

	cfg.Graph.Timeout = viper.GetDuration("graph.timeout")
	cfg.Graph.RequestsPerSecond = viper.GetFloat64("graph.requests_per_second")

	// WhatsApp
	cfg.WhatsApp.PhoneID = stringWithOverride("whatsapp.phone_id", "whatsapp_phone_id")
	cfg.WhatsApp.APIVersion = viper.GetString("whatsapp.api_version")
	cfg.WhatsApp.TemplateName = stringWithOverride("whatsapp.template_name", "template_name")
	cfg.WhatsApp.LanguageCode = stringWithOverride("whatsapp.language_code", "language_code")
	cfg.WhatsApp.AdminPhone = stringWithOverride("whatsapp.admin_phone", "admin_phone")
	cfg.WhatsApp.ClientPhone = stringWithOverride("whatsapp.client_phone", "client_phone")
	cfg.WhatsApp.MyPhone = stringWithOverride("whatsapp.my_phone", "my_phone")

	// Google Sheets
	cfg.GoogleSheets.CredentialsPath = stringWithOverride("google_sheets.credentials_path", "google_creds_file")
	cfg.GoogleSheets.SheetName = stringWithOverride("google_sheets.sheet_name", "sheet_name")
	cfg.GoogleSheets.CacheTTL = viper.GetDuration("google_sheets.cache_ttl")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 5000)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.privacy_contact", "example@example.com")
	viper.SetDefault("http_server.shutdown_timeout", "10s")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("meta.graph_api_version", "v19.0")
	viper.SetDefault("meta.graph_base_url", "https://graph.facebook.com")
	viper.SetDefault("graph.timeout", "30s")
	viper.SetDefault("graph.requests_per_second", 0)

	// The messaging endpoint is pinned independently of the lead lookup version.
	viper.SetDefault("whatsapp.api_version", "v19.0")
	viper.SetDefault("whatsapp.language_code", "en_US")

	viper.SetDefault("google_sheets.cache_ttl", "10m")
}

// stringWithOverride reads key, letting the flat deployment variable win when set.
func stringWithOverride(key, flatKey string) string {
	if v := strings.TrimSpace(viper.GetString(flatKey)); v != "" {
		return v
	}
	return strings.TrimSpace(viper.GetString(key))
}

func (c *Config) validate() error {
	if c.Meta.VerifyToken == "" {
		return errors.New("VERIFY_TOKEN is required")
	}
	if c.HTTPServer.Port <= 0 {
		return fmt.Errorf("invalid http port %d", c.HTTPServer.Port)
	}
	return nil
}

// Warnings lists optional settings that are missing. Each missing group disables
// one sink at runtime rather than failing start-up.
func (c *Config) Warnings() []string {
	var out []string
	if c.Meta.AccessToken == "" {
		out = append(out, "PAGE_ACCESS_TOKEN is empty: lead lookups and WhatsApp sends will be rejected")
	}
	if c.GoogleSheets.CredentialsPath == "" || c.GoogleSheets.SheetName == "" {
		out = append(out, "GOOGLE_CREDS_FILE or SHEET_NAME is empty: spreadsheet appends will fail")
	}
	if c.WhatsApp.PhoneID == "" || c.WhatsApp.TemplateName == "" {
		out = append(out, "WHATSAPP_PHONE_ID or TEMPLATE_NAME is empty: notifications will fail")
	}
	if len(c.WhatsApp.Recipients()) == 0 {
		out = append(out, "CLIENT_PHONE and MY_PHONE are empty: no notification recipients")
	}
	return out
}
