package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type (
	Config struct {
		HTTP      HTTP      `envPrefix:"HTTP_"`
		Logger    Logger    `envPrefix:"LOGGER_"`
		Telemetry Telemetry `envPrefix:"TELEMETRY_"`
		Archive   Archive   `envPrefix:"ARCHIVE_"`
		Cache     Cache     `envPrefix:"CACHE_"`
		Redis     Redis     `envPrefix:"REDIS_"`
		DB        DB        `envPrefix:"DB_"`
		Storage   Storage   `envPrefix:"STORAGE_"`
	}

	HTTP struct {
		Server  Server        `envPrefix:"SERVER_"`
		Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
	}

	Server struct {
		Port         string        `env:"PORT" envDefault:"8080"`
		ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
		WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
		IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
		// MaxUploadSize bounds multipart bodies accepted by the catalog.
		MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"536870912"`
	}

	Logger struct {
		Level    string `env:"LEVEL" envDefault:"info"`
		Encoding string `env:"ENCODING" envDefault:"console"`
	}

	Telemetry struct {
		Enabled        bool   `env:"ENABLED" envDefault:"false"`
		ServiceName    string `env:"SERVICE_NAME" envDefault:"guide-helper-raster"`
		ServiceVersion string `env:"SERVICE_VERSION" envDefault:"1.0.0"`
		Environment    string `env:"ENVIRONMENT" envDefault:"production"`
		OTLPEndpoint   string `env:"OTLP_ENDPOINT" envDefault:"otel-collector.observability.svc.cluster.local:4317"`
	}

	Archive struct {
		Path    string `env:"PATH" envDefault:"ortho.mbtiles"`
		MaxZoom int    `env:"MAX_ZOOM" envDefault:"25"`
	}

	Cache struct {
		// Type is one of memory, sqlite, redis, file, disabled.
		Type       string `env:"TYPE" envDefault:"memory"`
		SQLitePath string `env:"SQLITE_PATH" envDefault:"file:tile_cache.db?cache=shared&mode=memory"`
		FileDir    string `env:"FILE_DIR" envDefault:"cache"`
	}

	Redis struct {
		Addr     string        `env:"ADDR" envDefault:"localhost:6379"`
		Password string        `env:"PASSWORD" envDefault:""`
		DB       int           `env:"DB" envDefault:"0"`
		TTL      time.Duration `env:"TTL" envDefault:"24h"`
	}

	DB struct {
		// DSN selects the Postgres catalog store; empty keeps layers in memory.
		DSN             string        `env:"DSN" envDefault:""`
		MaxConns        int32         `env:"MAX_CONNS" envDefault:"4"`
		ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
		MigrationsTable string        `env:"MIGRATIONS_TABLE" envDefault:"goose_db_version"`
	}

	Storage struct {
		Endpoint      string `env:"ENDPOINT" envDefault:"minio:9000"`
		AccessKey     string `env:"ACCESS_KEY" envDefault:"minioadmin"`
		SecretKey     string `env:"SECRET_KEY" envDefault:"minioadmin"`
		UseSSL        bool   `env:"USE_SSL" envDefault:"false"`
		Bucket        string `env:"BUCKET" envDefault:"rasters"`
		Region        string `env:"REGION" envDefault:"us-east-1"`
		PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:9000"`
	}
)

func New() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Printf("NOTICE: .env file not found or cannot be loaded: %v\n", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
