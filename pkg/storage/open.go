package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/orgdot/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

// Backends lists every backend name.
var Backends = []string{BackendMemory, BackendFile, BackendRedis, BackendMongo, BackendSQLite}

// Config selects and configures a backend. Field names match the
// "storage.*" settings keys.
type Config struct {
	Backend string `mapstructure:"backend"`

	// file
	Dir string `mapstructure:"dir"`

	// redis
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	Prefix        string        `mapstructure:"prefix"`
	TTL           time.Duration `mapstructure:"ttl"`

	// mongo
	MongoURI        string `mapstructure:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection"`

	// sqlite
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DefaultDir is the file backend directory used when Config.Dir is empty.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".orgdot"
	}
	return filepath.Join(home, ".orgdot", "store")
}

// Open builds the backend named by cfg.Backend. An empty name means file.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendMemory:
		return NewMemory(), nil
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			dir = DefaultDir()
		}
		return wrapOpen(NewFile(expandHome(dir)))
	case BackendRedis:
		addr := cfg.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		return wrapOpen(NewRedis(ctx, RedisOptions{
			Addr:     addr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.Prefix,
			TTL:      cfg.TTL,
		}))
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "storage backend mongo requires mongo_uri")
		}
		return wrapOpen(NewMongo(ctx, MongoOptions{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		}))
	case BackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = filepath.Join(DefaultDir(), "orgdot.db")
		}
		return wrapOpen(NewSQLite(ctx, expandHome(path)))
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"unknown storage backend %q (valid: %s)", cfg.Backend, strings.Join(Backends, ", "))
	}
}

func wrapOpen[S Store](s S, err error) (Store, error) {
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open storage")
	}
	return s, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
