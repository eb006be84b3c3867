package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the client configuration.
type Config struct {
	BackendURL      string
	HTTPTimeout     time.Duration
	HistoryPageSize int
	SessionBackend  string
	SessionDir      string
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
}

// Init wires viper to the environment. Call once at startup before
// GetConfig.
func Init() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	viper.ReadInConfig()

	viper.BindEnv("backend.url", "ATM_BACKEND_URL")
	viper.BindEnv("backend.timeout", "ATM_BACKEND_TIMEOUT")
	viper.BindEnv("history.page_size", "ATM_HISTORY_PAGE_SIZE")
	viper.BindEnv("session.backend", "ATM_SESSION_BACKEND")
	viper.BindEnv("session.dir", "ATM_SESSION_DIR")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")
}

// GetConfig returns the configuration with defaults applied.
func GetConfig() *Config {
	viper.SetDefault("backend.url", "http://localhost:8088")
	viper.SetDefault("backend.timeout", 15*time.Second)
	viper.SetDefault("history.page_size", 5)
	viper.SetDefault("session.backend", "file")
	viper.SetDefault("session.dir", ".atm-session")
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	return &Config{
		BackendURL:      viper.GetString("backend.url"),
		HTTPTimeout:     viper.GetDuration("backend.timeout"),
		HistoryPageSize: viper.GetInt("history.page_size"),
		SessionBackend:  viper.GetString("session.backend"),
		SessionDir:      viper.GetString("session.dir"),
		RedisHost:       viper.GetString("redis.host"),
		RedisPort:       viper.GetString("redis.port"),
		RedisPassword:   viper.GetString("redis.password"),
		RedisDB:         viper.GetInt("redis.db"),
	}
}
