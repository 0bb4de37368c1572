package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverPGXPool = "pgx.pool"
	DriverSQLDB   = "sql.db"
	DriverSQLX    = "sqlx.db"
)

var (
	ErrReadingConfigFailed = errors.New("reading config file failed")
	ErrParsingConfigFailed = errors.New("parsing config file failed")
	ErrInvalidConfig       = errors.New("invalid config")
)

type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	Log           LogConfig           `yaml:"log"`
	Observability ObservabilityConfig `yaml:"observability"`
	Ledger        LedgerConfig        `yaml:"ledger"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// PostgresConfig selects the memory engine if DSN is empty.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"`
	ReplicaDSN      string        `yaml:"replica_dsn"`
	Driver          string        `yaml:"driver"`
	TableName       string        `yaml:"table_name"`
	CreateSchema    bool          `yaml:"create_schema"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ObservabilityConfig struct {
	Enabled        bool          `yaml:"enabled"`
	ServiceName    string        `yaml:"service_name"`
	TraceEndpoint  string        `yaml:"trace_endpoint"`
	MetricEndpoint string        `yaml:"metric_endpoint"`
	LogEndpoint    string        `yaml:"log_endpoint"`
	MetricInterval time.Duration `yaml:"metric_interval"`
	Insecure       bool          `yaml:"insecure"`
}

// LedgerConfig tunes the command handlers.
type LedgerConfig struct {
	DailyGoal          int           `yaml:"daily_goal"`
	MinimumStepDelta   int           `yaml:"minimum_step_delta"`
	CommandTimeout     time.Duration `yaml:"command_timeout"`
	MaxRetryAttempts   int           `yaml:"max_retry_attempts"`
	RedemptionValidity time.Duration `yaml:"redemption_validity"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    20 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Postgres: PostgresConfig{
			Driver:          DriverPGXPool,
			TableName:       "events",
			MaxConns:        8,
			MinConns:        2,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 5 * time.Minute,
			ConnectTimeout:  5 * time.Second,
		},
		Log: LogConfig{Level: "info"},
		Observability: ObservabilityConfig{
			ServiceName:    "ledgerd",
			TraceEndpoint:  "localhost:4317",
			MetricEndpoint: "localhost:4317",
			LogEndpoint:    "localhost:4317",
			MetricInterval: 15 * time.Second,
			Insecure:       true,
		},
		Ledger: LedgerConfig{
			DailyGoal:        10000,
			MinimumStepDelta: 100,
			CommandTimeout:   15 * time.Second,
			MaxRetryAttempts: 6,
		},
	}
}

// Load reads the defaults, the YAML file at path (if path is not empty), then the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrReadingConfigFailed, err)
		}

		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Join(ErrParsingConfigFailed, err)
		}
	}

	if err := cfg.applyEnvironment(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnvironment() error {
	overrides := map[string]*string{
		"LEDGER_HTTP_ADDR":            &c.HTTP.Addr,
		"LEDGER_POSTGRES_DSN":         &c.Postgres.DSN,
		"LEDGER_POSTGRES_REPLICA_DSN": &c.Postgres.ReplicaDSN,
		"LEDGER_DRIVER":               &c.Postgres.Driver,
		"LEDGER_LOG_LEVEL":            &c.Log.Level,
	}

	for key, field := range overrides {
		if value, found := os.LookupEnv(key); found {
			*field = value
		}
	}

	if value, found := os.LookupEnv("LEDGER_OBSERVABILITY_ENABLED"); found {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Join(ErrInvalidConfig, fmt.Errorf("LEDGER_OBSERVABILITY_ENABLED: %w", err))
		}
		c.Observability.Enabled = enabled
	}

	return nil
}

func (c Config) Validate() error {
	var problems []error

	switch c.Postgres.Driver {
	case DriverPGXPool, DriverSQLDB, DriverSQLX:
	default:
		problems = append(problems, fmt.Errorf("unknown postgres driver %q", c.Postgres.Driver))
	}

	if c.Postgres.ReplicaDSN != "" && c.Postgres.DSN == "" {
		problems = append(problems, errors.New("replica dsn requires a primary dsn"))
	}

	if c.Postgres.TableName == "" {
		problems = append(problems, errors.New("events table name must not be empty"))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		problems = append(problems, err)
	}

	if c.Ledger.DailyGoal <= 0 {
		problems = append(problems, errors.New("daily goal must be positive"))
	}

	if c.Ledger.MinimumStepDelta < 0 {
		problems = append(problems, errors.New("minimum step delta must not be negative"))
	}

	if c.Ledger.CommandTimeout <= 0 {
		problems = append(problems, errors.New("command timeout must be positive"))
	}

	if c.Ledger.MaxRetryAttempts <= 0 {
		problems = append(problems, errors.New("max retry attempts must be positive"))
	}

	if c.Ledger.RedemptionValidity < 0 {
		problems = append(problems, errors.New("redemption validity must not be negative"))
	}

	if len(problems) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, problems...)...)
	}

	return nil
}

// UsesPostgres is false if the daemon should run on the memory engine.
func (c Config) UsesPostgres() bool {
	return c.Postgres.DSN != ""
}

func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}

	return level, nil
}
