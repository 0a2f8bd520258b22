package runner

import (
	"context"
	"errors"
	"flag"
	"os"

	"go.uber.org/zap"
)

const (
	RunModeDemo = iota + 1
)

const (
	StorageMemory   = "memory"
	StorageSqlite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

var (
	ErrInvalidRunMode = errors.New("invalid run mode")
	ErrInvalidStorage = errors.New("invalid storage backend")
)

type Runner interface {
	Run(context.Context) error
	Close(context.Context) error
}

type Config struct {
	Storage        string
	Dsn            string
	SqlitePath     string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	Debug          bool
	UseDigestIndex bool
	RunMode        int
}

func ParseConfig() *Config {
	cfg := Config{}

	flag.StringVar(&cfg.Storage, "storage", StorageMemory, "storage backend: memory, sqlite, postgres or redis [default: memory]")
	flag.StringVar(&cfg.Dsn, "dsn", "", "database connection string [only valid with postgres storage]")
	flag.StringVar(&cfg.SqlitePath, "sqlite-path", "records.db", "path to the sqlite database file [only valid with sqlite storage]")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", "localhost:6379", "redis address [only valid with redis storage]")
	flag.StringVar(&cfg.RedisPassword, "redis-password", "", "redis password [only valid with redis storage]")
	flag.IntVar(&cfg.RedisDB, "redis-db", 0, "redis database number [only valid with redis storage]")
	flag.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")
	flag.BoolVar(&cfg.UseDigestIndex, "digest-index", false, "use the digest index instead of the linear scan")

	flag.Parse()

	if cfg.RedisPassword == "" {
		cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	}

	if cfg.Storage == StoragePostgres && cfg.Dsn == "" {
		panic("Dsn must be provided when using postgres storage")
	}

	cfg.RunMode = RunModeDemo

	return &cfg
}

func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
