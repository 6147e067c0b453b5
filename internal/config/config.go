package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string         `mapstructure:"environment"`
	Service     ServiceConfig  `mapstructure:"service"`
	Storage     StorageConfig  `mapstructure:"storage"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	History     HistoryConfig  `mapstructure:"history"`
	Logging     LoggingConfig  `mapstructure:"logging"`
}

type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

// ServiceConfig points at the remote generation and check endpoints.
// There is deliberately no timeout setting: a request runs until the
// service answers or the transport fails.
type ServiceConfig struct {
	GenerateURL string `mapstructure:"generate_url"`
	CheckURL    string `mapstructure:"check_url"`
	UserAgent   string `mapstructure:"user_agent"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	Path          string `mapstructure:"path"`
	GenerationKey string `mapstructure:"generation_key"`
	CheckKey      string `mapstructure:"check_key"`
}

type DatabaseConfig struct {
	Type            string `mapstructure:"type"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type HistoryConfig struct {
	DateLayout string `mapstructure:"date_layout"`
	Locale     string `mapstructure:"locale"`
}

// Storage backends understood by the app wiring.
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// DefaultDateLayout matches the en-US locale string the web client stored.
const DefaultDateLayout = "1/2/2006, 3:04:05 PM"

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("service.generate_url", "http://127.0.0.1:5000/generate-password")
	v.SetDefault("service.check_url", "https://passcheq-production.up.railway.app/check-password")
	v.SetDefault("service.user_agent", "passcheq-cli")

	v.SetDefault("storage.type", StorageFile)
	v.SetDefault("storage.path", defaultDataDir())
	v.SetDefault("storage.generation_key", "passwordHistory")
	v.SetDefault("storage.check_key", "passwordChecks")

	v.SetDefault("database.type", StorageSQLite)
	v.SetDefault("database.dbname", filepath.Join(defaultDataDir(), "passcheq.db"))
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", 300)
	v.SetDefault("database.log_level", "silent")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "passcheq:")

	v.SetDefault("history.date_layout", DefaultDateLayout)
	v.SetDefault("history.locale", "en")

	v.SetDefault("logging.log_level", "warn")
	v.SetDefault("logging.log_file", "")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".passcheq"
	}
	return filepath.Join(home, ".local", "share", "passcheq")
}

// Load reads the configuration. An empty configPath searches the working
// directory and $HOME/.config/passcheq; finding nothing there is fine and
// leaves the defaults in place. An explicit path must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("json")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "passcheq"))
		}
	}

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// 绑定环境变量
	v.SetEnvPrefix("PASSCHEQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
