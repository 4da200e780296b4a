package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server       ServerConfig
	DB           DBConfig
	CORS         CORSConfig
	Log          LogConfig
	JWT          JWTConfig
	Cookie       CookieConfig
	Booking      BookingConfig
	Mail         MailConfig
	Notification NotificationConfig
	Kafka        KafkaConfig
	Verification VerificationConfig
	Redis        RedisConfig
	RateLimit    RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAMESITE" default:"Lax"`
}

type BookingConfig struct {
	// Reservation instants sent without an offset are read in this zone.
	TimeZone string `envconfig:"BOOKING_TIMEZONE" default:"UTC"`
}

type MailConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port     int    `envconfig:"SMTP_PORT" default:"465"`
	Username string `envconfig:"SMTP_USERNAME" default:""`
	Password string `envconfig:"SMTP_PASSWORD" default:""`
	From     string `envconfig:"SMTP_FROM" default:"no-reply@localhost"`
	FromName string `envconfig:"SMTP_FROM_NAME" default:"Rental Booking"`
}

// DevMode is on when no SMTP password is configured; messages are logged instead of sent.
func (c MailConfig) DevMode() bool {
	return c.Password == ""
}

type NotificationConfig struct {
	Transport    string        `envconfig:"NOTIFY_TRANSPORT" default:"smtp"` // smtp | log | kafka
	DeadLetter   string        `envconfig:"NOTIFY_DEAD_LETTER" default:"db"` // db | log
	Workers      int           `envconfig:"NOTIFY_WORKERS" default:"4"`
	QueueSize    int           `envconfig:"NOTIFY_QUEUE_SIZE" default:"256"`
	MaxAttempts  int           `envconfig:"NOTIFY_MAX_ATTEMPTS" default:"3"`
	SendTimeout  time.Duration `envconfig:"NOTIFY_SEND_TIMEOUT" default:"15s"`
	RetryBackoff time.Duration `envconfig:"NOTIFY_RETRY_BACKOFF" default:"500ms"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"KAFKA_NOTIFICATION_TOPIC" default:"notifications"`
}

type VerificationConfig struct {
	Store  string `envconfig:"VERIFICATION_STORE" default:"memory"` // memory | redis
	Shards int    `envconfig:"VERIFICATION_SHARDS" default:"32"`
	// Zero keeps codes valid until consumed or overwritten.
	CodeTTL     time.Duration `envconfig:"VERIFICATION_CODE_TTL" default:"0s"`
	RedisPrefix string        `envconfig:"VERIFICATION_REDIS_PREFIX" default:"otp"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type RateLimitConfig struct {
	AuthRPS   float64 `envconfig:"RATE_LIMIT_AUTH_RPS" default:"1"`
	AuthBurst int     `envconfig:"RATE_LIMIT_AUTH_BURST" default:"5"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "24h",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Booking: BookingConfig{
			TimeZone: "UTC",
		},
		Mail: MailConfig{
			From:     "no-reply@localhost",
			FromName: "Rental Booking",
		},
		Notification: NotificationConfig{
			Transport:    "log",
			DeadLetter:   "log",
			Workers:      1,
			QueueSize:    16,
			MaxAttempts:  1,
			SendTimeout:  time.Second,
			RetryBackoff: 10 * time.Millisecond,
		},
		Verification: VerificationConfig{
			Store:  "memory",
			Shards: 4,
		},
		RateLimit: RateLimitConfig{
			AuthRPS:   1000,
			AuthBurst: 1000,
		},
	}
}
