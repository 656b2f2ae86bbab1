package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Data  DataConfig
	Redis RedisConfig
	JWT   JWTConfig
	Auth  AuthConfig
	Log   LogConfig
}

// DataConfig locates the flat-file documents on disk.
type DataConfig struct {
	Dir string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
	SessionTTL     time.Duration
}

// AuthConfig bounds login attempts per email (token bucket).
type AuthConfig struct {
	LoginRate  float64
	LoginBurst int
}

type LogConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables and a .env file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", 15)
	viper.SetDefault("SESSION_TTL", 10080)
	viper.SetDefault("AUTH_LOGIN_RATE", 1.0)
	viper.SetDefault("AUTH_LOGIN_BURST", 5)
	viper.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Data: DataConfig{
			Dir: viper.GetString("DATA_DIR"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:         viper.GetString("JWT_SECRET"),
			AccessTokenTTL: time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
			SessionTTL:     time.Duration(viper.GetInt("SESSION_TTL")) * time.Minute,
		},
		Auth: AuthConfig{
			LoginRate:  viper.GetFloat64("AUTH_LOGIN_RATE"),
			LoginBurst: viper.GetInt("AUTH_LOGIN_BURST"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
