package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Only the braced form is expanded: bcrypt hashes contain bare "$".
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Salon     SalonConfig     `toml:"salon"`
	Admin     AdminConfig     `toml:"admin"`
	Booking   BookingConfig   `toml:"booking"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Kafka     KafkaConfig     `toml:"kafka"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN returns a lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SalonConfig describes the salon this process serves. Contact fields go into notification events.
type SalonConfig struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Address  string `toml:"address"`
	Phone    string `toml:"phone"`
	Email    string `toml:"email"`
	Timezone string `toml:"timezone"`
}

// SalonID returns the parsed salon id. Valid after Load.
func (s SalonConfig) SalonID() uuid.UUID {
	return uuid.MustParse(s.ID)
}

// AdminConfig credentials for the back office (HTTP Basic). PasswordHash is a bcrypt hash.
type AdminConfig struct {
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"`
}

type BookingConfig struct {
	NextSlotsDefaultLimit int `toml:"next_slots_default_limit"`
	NextSlotsMaxLimit     int `toml:"next_slots_max_limit"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RateLimitConfig limits POST /bookings per client. Redis is used when enabled,
// otherwise an in-process token bucket.
type RateLimitConfig struct {
	Enabled       bool   `toml:"enabled"`
	Requests      int    `toml:"requests"`
	WindowSeconds int    `toml:"window_seconds"`
	Prefix        string `toml:"prefix"`
	FailOpen      bool   `toml:"fail_open"`
	// TrustedProxies comma separated IPs or CIDRs allowed to set X-Forwarded-For
	TrustedProxies string `toml:"trusted_proxies"`
}

// TrustedProxyList splits the comma separated proxy list.
func (r RateLimitConfig) TrustedProxyList() []string {
	var out []string
	for _, p := range strings.Split(r.TrustedProxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type KafkaConfig struct {
	Enabled        bool   `toml:"enabled"`
	Brokers        string `toml:"brokers"`
	Topic          string `toml:"topic"`
	WriteTimeoutMs int    `toml:"write_timeout_ms"`
}

// BrokerList splits the comma separated broker list.
func (k KafkaConfig) BrokerList() []string {
	parts := strings.Split(k.Brokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads .env (if present), then the TOML file with ${VAR} expansion,
// then applies SALON_* environment overrides and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if _, err := toml.Decode(expandEnv(string(raw)), &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if _, err := uuid.Parse(c.Salon.ID); err != nil {
		return fmt.Errorf("%w: salon.id must be a uuid: %v", ErrInvalidConfig, err)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if c.Admin.Username == "" || c.Admin.PasswordHash == "" {
		return fmt.Errorf("%w: admin.username and admin.password_hash are required", ErrInvalidConfig)
	}
	if c.Booking.NextSlotsDefaultLimit > c.Booking.NextSlotsMaxLimit {
		return fmt.Errorf("%w: booking.next_slots_default_limit exceeds max", ErrInvalidConfig)
	}
	if c.Kafka.Enabled && len(c.Kafka.BrokerList()) == 0 {
		return fmt.Errorf("%w: kafka.brokers is required when kafka is enabled", ErrInvalidConfig)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Database.Host, "SALON_DB_HOST")
	overrideInt(&cfg.Database.Port, "SALON_DB_PORT")
	overrideString(&cfg.Database.User, "SALON_DB_USER")
	overrideString(&cfg.Database.Password, "SALON_DB_PASSWORD")
	overrideString(&cfg.Database.DBName, "SALON_DB_NAME")
	overrideString(&cfg.Admin.PasswordHash, "SALON_ADMIN_PASSWORD_HASH")
	overrideString(&cfg.Redis.Password, "SALON_REDIS_PASSWORD")
	overrideString(&cfg.Kafka.Brokers, "SALON_KAFKA_BROKERS")
	overrideString(&cfg.RateLimit.TrustedProxies, "SALON_TRUSTED_PROXIES")
	overrideString(&cfg.Logs.Level, "SALON_LOG_LEVEL")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "salon_booking_service"
	}
	if cfg.Booking.NextSlotsDefaultLimit == 0 {
		cfg.Booking.NextSlotsDefaultLimit = 5
	}
	if cfg.Booking.NextSlotsMaxLimit == 0 {
		cfg.Booking.NextSlotsMaxLimit = 50
	}
	if cfg.RateLimit.Requests == 0 {
		cfg.RateLimit.Requests = 10
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
	if cfg.RateLimit.Prefix == "" {
		cfg.RateLimit.Prefix = "salon:rl"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "salon.bookings"
	}
	if cfg.Kafka.WriteTimeoutMs == 0 {
		cfg.Kafka.WriteTimeoutMs = 2000
	}
}

func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
