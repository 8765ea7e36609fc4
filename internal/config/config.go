package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	ContactTransportWeb3Forms = "web3forms"
	ContactTransportSMTP      = "smtp"
)

type Config struct {
	Env             string `yaml:"env"`
	ShortCodeLength int    `yaml:"short_code_length"`
	PublicBaseURL   string `yaml:"public_base_url"`
	HTTPServer      `yaml:"http_server"`
	Postgres        `yaml:"postgres"`
	Content         `yaml:"content"`
	Board           `yaml:"board"`
	Calendar        `yaml:"calendar"`
	Contact         `yaml:"contact"`
	Newsletter      `yaml:"newsletter"`
	RateLimit       `yaml:"rate_limit"`
	CORS            `yaml:"cors"`
}

type HTTPServer struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
	CertFile       string        `yaml:"cert_file"`
	KeyFile        string        `yaml:"key_file"`
	SwaggerFile    string        `yaml:"swagger_file"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   10 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
	SwaggerFile:    "./docs/swagger.yml",
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type Postgres struct {
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	DB              string        `yaml:"db"`
	SSLMode         string        `yaml:"sslmode"`
	MigrationsPath  string        `yaml:"migrations_path"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnectAttempts int           `yaml:"connect_attempts"`
}

var defaultPostgres = Postgres{
	Host:            "localhost",
	Port:            5432,
	SSLMode:         "disable",
	MigrationsPath:  "file://migrations",
	ConnMaxIdleTime: 5 * time.Minute,
	ConnMaxLifetime: 30 * time.Minute,
	MaxIdleConns:    5,
	MaxOpenConns:    25,
	ConnectAttempts: 5,
}

func (p *Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

type Content struct {
	Dir           string        `yaml:"dir"`
	IncludeDrafts bool          `yaml:"include_drafts"`
	Watch         bool          `yaml:"watch"`
	CacheMaxAge   time.Duration `yaml:"cache_max_age"`
}

var defaultContent = Content{
	Dir:         "content",
	CacheMaxAge: 5 * time.Minute,
}

type Board struct {
	BaseURL       string        `yaml:"base_url"`
	Token         string        `yaml:"token"`
	Organization  string        `yaml:"organization"`
	ProjectNumber int           `yaml:"project_number"`
	TTL           time.Duration `yaml:"ttl"`
	// WarmSchedule is a cron expression for refreshing the board ahead of requests. Empty disables it.
	WarmSchedule  string        `yaml:"warm_schedule"`
}

var defaultBoard = Board{
	BaseURL: "https://api.github.com",
	TTL:     48 * time.Hour,
}

type Calendar struct {
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`
	CalendarID string `yaml:"calendar_id"`
}

var defaultCalendar = Calendar{
	BaseURL: "https://www.googleapis.com/calendar/v3",
}

type Contact struct {
	Transport string `yaml:"transport"`
	Web3Forms `yaml:"web3forms"`
	SMTP      `yaml:"smtp"`
}

type Web3Forms struct {
	BaseURL   string `yaml:"base_url"`
	AccessKey string `yaml:"access_key"`
	FromName  string `yaml:"from_name"`
}

type SMTP struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

var defaultContact = Contact{
	Transport: ContactTransportWeb3Forms,
	Web3Forms: Web3Forms{
		BaseURL:  "https://api.web3forms.com",
		FromName: "Website contact form",
	},
	SMTP: SMTP{
		Port: 587,
	},
}

type Newsletter struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	ListID  string `yaml:"list_id"`
}

// MailchimpBaseURL returns the configured base URL or the data-center URL derived from the API key suffix.
func (n *Newsletter) MailchimpBaseURL() string {
	if n.BaseURL != "" {
		return n.BaseURL
	}

	_, dc, ok := strings.Cut(n.APIKey, "-")
	if !ok || dc == "" {
		dc = "us1"
	}

	return fmt.Sprintf("https://%s.api.mailchimp.com", dc)
}

type RateLimit struct {
	Rate  float64 `yaml:"rate"`
	Burst int64   `yaml:"burst"`
}

var defaultRateLimit = RateLimit{
	Rate:  1,
	Burst: 5,
}

var ErrInvalidRateLimit = errors.New("rate_limit: rate and burst must be positive")

func (rl RateLimit) validate() error {
	if rl.Rate <= 0 || rl.Burst <= 0 {
		return ErrInvalidRateLimit
	}
	return nil
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

var defaultCORS = CORS{
	AllowedOrigins: []string{"https://*"},
}

func Load(path string) (*Config, error) {
	const op = "config.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read config file: %w", op, err)
	}

	var cfg Config
	setDefaults(&cfg)

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
	}

	if err := cfg.RateLimit.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.ShortCodeLength = 5
	cfg.HTTPServer = defaultHTTPServer
	cfg.Postgres = defaultPostgres
	cfg.Content = defaultContent
	cfg.Board = defaultBoard
	cfg.Calendar = defaultCalendar
	cfg.Contact = defaultContact
	cfg.RateLimit = defaultRateLimit
	cfg.CORS = defaultCORS
}
