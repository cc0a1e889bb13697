package models

import "time"

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	NewRelic  NewRelicConfig
	Logger    LoggerConfig
	Scorer    ScorerConfig
	Pipeline  PipelineConfig
	Generator GeneratorConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout int // in seconds
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	Database      string
	SSLMode       string
	MaxConns      int
	IdleConns     int
	MigrationsDir string
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NewRelicConfig contains New Relic observability configuration
type NewRelicConfig struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

// ScorerConfig tunes the neighbor-similarity fraud scorer.
// SearchLimit is the number of nearest neighbors that vote on the verdict;
// NumCandidates bounds the candidate pool they are drawn from.
type ScorerConfig struct {
	SearchLimit   int
	NumCandidates int
}

// PipelineConfig tunes pipeline lifecycle behavior
type PipelineConfig struct {
	ShutdownTimeout     time.Duration
	ListenerMaxRestarts int
	RestartBaseDelay    time.Duration
}

// GeneratorConfig tunes synthetic transaction generation
type GeneratorConfig struct {
	Enabled         bool
	Interval        time.Duration
	SuspiciousRate  float64
	SeedPerCustomer int
	SnapshotRefresh time.Duration
	SnapshotTTL     time.Duration
}
