// Package config loads application settings from defaults, an optional
// config file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting of the server.
type Config struct {
	AppPort string

	DatabaseDriver string
	DatabaseDSN    string
	DatabaseLog    string

	JWTSecret string
	TokenTTL  time.Duration

	RabbitMQURL string

	LogLevel  string
	LogFormat string

	ImageStore  string // "local" or "s3"
	MediaRoot   string
	MediaURL    string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	IngredientCacheSize int
	PageSize            int
}

// Load reads the configuration. The file named by APP_CONFIG is optional.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("APP_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		AppPort:             v.GetString("APP_PORT"),
		DatabaseDriver:      v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:         v.GetString("DATABASE_DSN"),
		DatabaseLog:         v.GetString("DATABASE_LOG"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		TokenTTL:            v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           v.GetString("LOG_FORMAT"),
		ImageStore:          v.GetString("IMAGE_STORE"),
		MediaRoot:           v.GetString("MEDIA_ROOT"),
		MediaURL:            v.GetString("MEDIA_URL"),
		S3Bucket:            v.GetString("S3_BUCKET"),
		S3Region:            v.GetString("S3_REGION"),
		S3Endpoint:          v.GetString("S3_ENDPOINT"),
		S3AccessKey:         v.GetString("S3_ACCESS_KEY"),
		S3SecretKey:         v.GetString("S3_SECRET_KEY"),
		S3PublicURL:         v.GetString("S3_PUBLIC_URL"),
		IngredientCacheSize: v.GetInt("INGREDIENT_CACHE_SIZE"),
		PageSize:            v.GetInt("PAGE_SIZE"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=foodgram port=5432 sslmode=disable")
	v.SetDefault("DATABASE_LOG", "warn")
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("IMAGE_STORE", "local")
	v.SetDefault("MEDIA_ROOT", "./media")
	v.SetDefault("MEDIA_URL", "/media")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("INGREDIENT_CACHE_SIZE", 2048)
	v.SetDefault("PAGE_SIZE", 6)
}

func (c *Config) validate() error {
	switch c.ImageStore {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when IMAGE_STORE is s3")
		}
	default:
		return fmt.Errorf("unsupported IMAGE_STORE %q", c.ImageStore)
	}
	if c.IngredientCacheSize <= 0 {
		return fmt.Errorf("INGREDIENT_CACHE_SIZE must be positive, got %d", c.IngredientCacheSize)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}
