package state

import (
	"fmt"

	"github.com/angelmondragon/secondnest/pkg/config"
	"github.com/angelmondragon/secondnest/pkg/db"
	"github.com/angelmondragon/secondnest/pkg/redis"
)

// Open selects the backend named by cfg.
func Open(cfg config.StateConfig, redisClient *redis.Client, dbClient *db.Client) (Store, error) {
	switch cfg.Kind() {
	case config.StateBackendMemory:
		return NewMemoryStore(), nil
	case config.StateBackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis state backend requires a redis client")
		}
		return NewRedisStore(redisClient, cfg.TTL), nil
	case config.StateBackendSQL:
		if dbClient == nil {
			return nil, fmt.Errorf("sql state backend requires a database client")
		}
		return NewSQLStore(dbClient.DB()), nil
	default:
		return nil, fmt.Errorf("unsupported state backend %q", cfg.Backend)
	}
}
