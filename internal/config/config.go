package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Elevation ElevationConfig
	Engine    EngineConfig
	Log       LogConfig
	Worker    WorkerConfig
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

// ElevationConfig - access to the external elevation data source and the
// batching/retry policy around it
type ElevationConfig struct {
	BaseURL        string
	APIKey         string
	RequestTimeout int // seconds
	BatchSize      int
	MaxRetries     int
	RetryDelay     time.Duration
	CacheTTL       time.Duration // Redis lookaside; terrain is static
	Parallel       bool          // bounded-parallel batch fetching
	MaxParallel    int
}

// EngineConfig - coverage engine defaults and request limits
type EngineConfig struct {
	TxPowerDBm    float64
	MobileHeight  float64 // receiver height above ground, meters
	MaxResolution int
	MaxRadiusKm   float64
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled            bool
	PrefetchInterval   time.Duration
	PrefetchResolution int
	PrefetchRadiusKm   float64
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
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
		Elevation: ElevationConfig{
			BaseURL:        viper.GetString("ELEVATION_BASE_URL"),
			APIKey:         viper.GetString("ELEVATION_API_KEY"),
			RequestTimeout: viper.GetInt("ELEVATION_REQUEST_TIMEOUT"),
			BatchSize:      viper.GetInt("ELEVATION_BATCH_SIZE"),
			MaxRetries:     viper.GetInt("ELEVATION_MAX_RETRIES"),
			RetryDelay:     time.Duration(viper.GetInt("ELEVATION_RETRY_DELAY")) * time.Second,
			CacheTTL:       time.Duration(viper.GetInt("ELEVATION_CACHE_TTL")) * time.Second,
			Parallel:       viper.GetBool("ELEVATION_PARALLEL"),
			MaxParallel:    viper.GetInt("ELEVATION_MAX_PARALLEL"),
		},
		Engine: EngineConfig{
			TxPowerDBm:    viper.GetFloat64("ENGINE_TX_POWER_DBM"),
			MobileHeight:  viper.GetFloat64("ENGINE_MOBILE_HEIGHT"),
			MaxResolution: viper.GetInt("ENGINE_MAX_RESOLUTION"),
			MaxRadiusKm:   viper.GetFloat64("ENGINE_MAX_RADIUS_KM"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:            viper.GetBool("WORKER_ENABLED"),
			PrefetchInterval:   time.Duration(viper.GetInt("WORKER_PREFETCH_INTERVAL")) * time.Second,
			PrefetchResolution: viper.GetInt("WORKER_PREFETCH_RESOLUTION"),
			PrefetchRadiusKm:   viper.GetFloat64("WORKER_PREFETCH_RADIUS_KM"),
		},
	}

	// Set default values if not provided
	if cfg.Elevation.BaseURL == "" {
		cfg.Elevation.BaseURL = "https://maps.googleapis.com/maps/api/elevation"
	}
	if cfg.Elevation.RequestTimeout == 0 {
		cfg.Elevation.RequestTimeout = 30
	}
	if cfg.Elevation.BatchSize == 0 {
		cfg.Elevation.BatchSize = 300
	}
	if cfg.Elevation.MaxRetries == 0 {
		cfg.Elevation.MaxRetries = 2
	}
	if cfg.Elevation.RetryDelay == 0 {
		cfg.Elevation.RetryDelay = 2 * time.Second
	}
	if cfg.Elevation.CacheTTL == 0 {
		cfg.Elevation.CacheTTL = 24 * time.Hour
	}
	if cfg.Elevation.MaxParallel == 0 {
		cfg.Elevation.MaxParallel = 4
	}
	if cfg.Engine.TxPowerDBm == 0 {
		cfg.Engine.TxPowerDBm = 43
	}
	if cfg.Engine.MobileHeight == 0 {
		cfg.Engine.MobileHeight = 1.5
	}
	if cfg.Engine.MaxResolution == 0 {
		cfg.Engine.MaxResolution = 100
	}
	if cfg.Engine.MaxRadiusKm == 0 {
		cfg.Engine.MaxRadiusKm = 50
	}
	if cfg.Worker.PrefetchInterval == 0 {
		cfg.Worker.PrefetchInterval = 6 * time.Hour
	}
	if cfg.Worker.PrefetchResolution == 0 {
		cfg.Worker.PrefetchResolution = 20
	}
	if cfg.Worker.PrefetchRadiusKm == 0 {
		cfg.Worker.PrefetchRadiusKm = 5
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
