package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Otel     OtelConfig     `mapstructure:"otel"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // development / production
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite / postgres
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	DB      int    `mapstructure:"db"`
}

type AuthConfig struct {
	Mode      string `mapstructure:"mode"` // header / jwt
	JWTSecret string `mapstructure:"jwt_secret"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"` // disk / s3
	Dir     string `mapstructure:"dir"`
	Bucket  string `mapstructure:"bucket"`
	Region  string `mapstructure:"region"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type OtelConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

type SeedConfig struct {
	Users []string `mapstructure:"users"`
}

// Load reads config.yaml from the working directory (or the path in
// MICROBLOG_CONFIG) and applies MICROBLOG_* environment overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if p := os.Getenv("MICROBLOG_CONFIG"); p != "" {
		v.SetConfigFile(p)
	}

	v.SetEnvPrefix("MICROBLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "development")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "microblog.db")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("auth.mode", "header")
	v.SetDefault("storage.backend", "disk")
	v.SetDefault("storage.dir", "uploads")

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失时使用默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
