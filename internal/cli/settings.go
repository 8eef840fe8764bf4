package cli

import (
	stderrors "errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/storage"
)

// Settings are the application settings, read from orgdot.yaml and
// ORGDOT_* environment variables (ORGDOT_STORAGE_BACKEND=redis).
type Settings struct {
	Storage storage.Config `mapstructure:"storage"`
	Server  ServerSettings `mapstructure:"server"`
	Render  RenderSettings `mapstructure:"render"`
}

// ServerSettings configure "orgdot serve".
type ServerSettings struct {
	Addr         string        `mapstructure:"addr"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// RenderSettings configure artifact caching.
type RenderSettings struct {
	// Cache keeps rendered images in the store between runs.
	Cache bool `mapstructure:"cache"`
}

func setDefaults(v *viper.Viper) {
	storeDir := filepath.Join(".", "."+appName)
	if dir, err := dataDir(); err == nil {
		storeDir = filepath.Join(dir, "store")
	}

	v.SetDefault("storage.backend", storage.BackendFile)
	v.SetDefault("storage.dir", storeDir)
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.prefix", appName+":")
	v.SetDefault("storage.ttl", time.Duration(0))
	v.SetDefault("storage.mongo_uri", "")
	v.SetDefault("storage.mongo_database", appName)
	v.SetDefault("storage.mongo_collection", storage.DefaultMongoCollection)
	v.SetDefault("storage.sqlite_path", filepath.Join(storeDir, appName+".db"))

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_body_bytes", 4<<20)
	v.SetDefault("server.timeout", 60*time.Second)

	v.SetDefault("render.cache", true)
}

// loadSettings reads settings from path, or from orgdot.yaml in the working
// directory or data directory when path is empty. A missing default file is
// not an error. Flags in bind override the setting named by their key when
// set on the command line.
func loadSettings(path string, bind map[string]*pflag.Flag) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	for key, f := range bind {
		if err := v.BindPFlag(key, f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "bind flag %s", f.Name)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := dataDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read settings")
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode settings")
	}
	return &s, nil
}
