package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.)
// - default: Values common across all environments (timeouts, loan policy, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	Circulation CirculationConfig
	Worker      WorkerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host           string        `envconfig:"DB_HOST" default:"localhost"`
	Port           string        `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	DBName         string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSL_MODE" default:"disable"`
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"5s"`
	QueryTimeout   time.Duration `envconfig:"DB_QUERY_TIMEOUT" default:"10s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-Subject-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// Circulation policy knobs. MaxActiveLoans is the system-wide cap on
// simultaneous open borrow transactions per subject.
type CirculationConfig struct {
	MaxActiveLoans   int           `envconfig:"CIRC_MAX_ACTIVE_LOANS" default:"3"`
	LoanPeriod       time.Duration `envconfig:"CIRC_LOAN_PERIOD" default:"336h"`
	HoldPickupWindow time.Duration `envconfig:"CIRC_HOLD_PICKUP_WINDOW" default:"72h"`
	HoldLifetime     time.Duration `envconfig:"CIRC_HOLD_LIFETIME" default:"720h"`
}

type WorkerConfig struct {
	PollInterval  time.Duration `envconfig:"WORKER_POLL_INTERVAL" default:"15s"`
	SweepInterval time.Duration `envconfig:"WORKER_SWEEP_INTERVAL" default:"5m"`
	BatchSize     int           `envconfig:"WORKER_BATCH_SIZE" default:"50"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
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
			Host:           "localhost",
			Port:           "15433", // Test DB port
			User:           "test",
			Password:       "test",
			DBName:         "test_db",
			SSLMode:        "disable",
			ConnectTimeout: 5 * time.Second,
			QueryTimeout:   10 * time.Second,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Circulation: CirculationConfig{
			MaxActiveLoans:   3,
			LoanPeriod:       336 * time.Hour,
			HoldPickupWindow: 72 * time.Hour,
			HoldLifetime:     720 * time.Hour,
		},
		Worker: WorkerConfig{
			PollInterval:  time.Second,
			SweepInterval: time.Second,
			BatchSize:     10,
		},
	}
}
