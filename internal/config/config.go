package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Overpass OverpassConfig
	Sync     SyncConfig
	Amadeus  AmadeusConfig
	Deeplink DeeplinkConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	FlightsCacheTTL time.Duration
}

type OverpassConfig struct {
	URL            string
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

type SyncConfig struct {
	CountryCode   string
	Locale        string
	CourtesyDelay time.Duration
	BatchSize     int
}

type AmadeusConfig struct {
	BaseURL        string
	ClientID       string
	ClientSecret   string
	Currency       string
	RequestTimeout time.Duration
}

type DeeplinkConfig struct {
	TravelpayoutsMarker string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			FlightsCacheTTL: time.Duration(viper.GetInt("FLIGHTS_CACHE_TTL")) * time.Second,
		},
		Overpass: OverpassConfig{
			URL:            viper.GetString("OVERPASS_URL"),
			RequestTimeout: time.Duration(viper.GetInt("OVERPASS_REQUEST_TIMEOUT")) * time.Second,
			MaxRetries:     viper.GetInt("OVERPASS_MAX_RETRIES"),
			RetryBaseDelay: time.Duration(viper.GetInt("OVERPASS_RETRY_BASE_DELAY")) * time.Second,
		},
		Sync: SyncConfig{
			CountryCode:   viper.GetString("SYNC_COUNTRY_CODE"),
			Locale:        viper.GetString("SYNC_LOCALE"),
			CourtesyDelay: time.Duration(viper.GetInt("SYNC_COURTESY_DELAY")) * time.Second,
			BatchSize:     viper.GetInt("SYNC_BATCH_SIZE"),
		},
		Amadeus: AmadeusConfig{
			BaseURL:        viper.GetString("AMADEUS_BASE_URL"),
			ClientID:       viper.GetString("AMADEUS_CLIENT_ID"),
			ClientSecret:   viper.GetString("AMADEUS_CLIENT_SECRET"),
			Currency:       viper.GetString("AMADEUS_CURRENCY"),
			RequestTimeout: time.Duration(viper.GetInt("AMADEUS_REQUEST_TIMEOUT")) * time.Second,
		},
		Deeplink: DeeplinkConfig{
			TravelpayoutsMarker: viper.GetString("TRAVELPAYOUTS_MARKER"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Overpass.URL == "" {
		cfg.Overpass.URL = "https://overpass-api.de/api/interpreter"
	}
	if cfg.Overpass.RequestTimeout == 0 {
		cfg.Overpass.RequestTimeout = 120 * time.Second
	}
	if cfg.Overpass.MaxRetries == 0 {
		cfg.Overpass.MaxRetries = 3
	}
	if cfg.Overpass.RetryBaseDelay == 0 {
		cfg.Overpass.RetryBaseDelay = 15 * time.Second
	}
	if cfg.Sync.CountryCode == "" {
		cfg.Sync.CountryCode = "JP"
	}
	if cfg.Sync.Locale == "" {
		cfg.Sync.Locale = "ko"
	}
	if cfg.Sync.CourtesyDelay == 0 {
		cfg.Sync.CourtesyDelay = 15 * time.Second
	}
	if cfg.Sync.BatchSize == 0 {
		cfg.Sync.BatchSize = 500
	}
	if cfg.Amadeus.BaseURL == "" {
		cfg.Amadeus.BaseURL = "https://test.api.amadeus.com"
	}
	if cfg.Amadeus.Currency == "" {
		cfg.Amadeus.Currency = "KRW"
	}
	if cfg.Amadeus.RequestTimeout == 0 {
		cfg.Amadeus.RequestTimeout = 10 * time.Second
	}
	if cfg.Cache.FlightsCacheTTL == 0 {
		cfg.Cache.FlightsCacheTTL = 15 * time.Minute
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// IsProduction reports whether the server runs with production configuration.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
