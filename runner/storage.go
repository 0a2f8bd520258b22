package runner

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver

	"github.com/recordgate/recordgate/admission"
	"github.com/recordgate/recordgate/store/memory"
	"github.com/recordgate/recordgate/store/postgres"
	"github.com/recordgate/recordgate/store/redis"
	"github.com/recordgate/recordgate/store/sqlite"
)

// NewStore builds the admission store selected by the config.
func NewStore(cfg *Config) (admission.Store, error) {
	switch cfg.Storage {
	case StorageMemory:
		return memory.New()
	case StorageSqlite:
		return sqlite.New(cfg.SqlitePath)
	case StoragePostgres:
		db, err := sql.Open("pgx", cfg.Dsn)
		if err != nil {
			return nil, err
		}

		return postgres.New(db)
	case StorageRedis:
		return redis.New(&redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidStorage, cfg.Storage)
	}
}
