package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends for the origin store.
const (
	StorageLocal  = "local"
	StorageMinio  = "minio"
	StorageMemory = "memory"
)

// Server captures process level configuration.
type Server struct {
	Addr      string `env:"BIRL_ADDR"      envDefault:":3000"`
	Namespace string `env:"BIRL_NAMESPACE" envDefault:"birl"`

	Storage   string `env:"BIRL_STORAGE"    envDefault:"local"`
	LocalRoot string `env:"BIRL_LOCAL_ROOT" envDefault:"./assets"`

	// APIKeys guards the render routes. Empty disables the check.
	APIKeys        []string      `env:"BIRL_API_KEYS"        envSeparator:","`
	RequestTimeout time.Duration `env:"BIRL_REQUEST_TIMEOUT" envDefault:"30s"`

	HTTP  HTTPConfig
	Minio MinioConfig
	Redis RedisConfig
	Cache CacheConfig
	Fetch FetchConfig
	Image ImageConfig
	Log   LogConfig
	Trace TraceConfig
}

// HTTPConfig bounds the server's connection handling. WriteTimeout covers a
// whole render, so it must not undercut BIRL_REQUEST_TIMEOUT.
type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `env:"BIRL_HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"BIRL_HTTP_READ_TIMEOUT"        envDefault:"15s"`
	WriteTimeout      time.Duration `env:"BIRL_HTTP_WRITE_TIMEOUT"       envDefault:"60s"`
	IdleTimeout       time.Duration `env:"BIRL_HTTP_IDLE_TIMEOUT"        envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"BIRL_HTTP_SHUTDOWN_TIMEOUT"    envDefault:"10s"`
}

// MinioConfig addresses an S3-compatible origin store.
type MinioConfig struct {
	Endpoint  string `env:"BIRL_MINIO_ENDPOINT"`
	Bucket    string `env:"BIRL_MINIO_BUCKET"     envDefault:"birl-assets"`
	AccessKey string `env:"BIRL_MINIO_ACCESS_KEY"`
	SecretKey string `env:"BIRL_MINIO_SECRET_KEY"`
	UseSSL    bool   `env:"BIRL_MINIO_USE_SSL"    envDefault:"true"`
}

// RedisConfig configures the optional durable cache tier. An empty URL means
// the origin store's cache namespace is used instead.
type RedisConfig struct {
	URL          string        `env:"BIRL_REDIS_URL"`
	PoolSize     int           `env:"BIRL_REDIS_POOL_SIZE"      envDefault:"10"`
	MinIdleConns int           `env:"BIRL_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"BIRL_REDIS_DIAL_TIMEOUT"   envDefault:"5s"`
	ReadTimeout  time.Duration `env:"BIRL_REDIS_READ_TIMEOUT"   envDefault:"3s"`
	WriteTimeout time.Duration `env:"BIRL_REDIS_WRITE_TIMEOUT"  envDefault:"3s"`
}

type CacheConfig struct {
	Tier1Capacity int `env:"BIRL_TIER1_CAPACITY" envDefault:"1000"`
}

type FetchConfig struct {
	Concurrency int           `env:"BIRL_FETCH_CONCURRENCY" envDefault:"8"`
	Timeout     time.Duration `env:"BIRL_FETCH_TIMEOUT"     envDefault:"10s"`
}

type ImageConfig struct {
	Format      string `env:"BIRL_OUTPUT_FORMAT" envDefault:"jpeg"`
	JPEGQuality int    `env:"BIRL_JPEG_QUALITY"  envDefault:"90"`
}

type LogConfig struct {
	Level  string `env:"BIRL_LOG_LEVEL"  envDefault:"info"`
	Format string `env:"BIRL_LOG_FORMAT" envDefault:"json"`
}

// TraceConfig enables OTLP trace export. Tracing stays off while Endpoint
// is empty.
type TraceConfig struct {
	Endpoint    string `env:"BIRL_OTEL_ENDPOINT"`
	ServiceName string `env:"BIRL_OTEL_SERVICE_NAME" envDefault:"birl"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Default returns the configuration produced by an empty environment.
func Default() Server {
	var cfg Server
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	return cfg
}

// Validate rejects settings the composer cannot run with.
func (s Server) Validate() error {
	var errs []error
	switch s.Storage {
	case StorageLocal, StorageMemory:
	case StorageMinio:
		if s.Minio.Endpoint == "" {
			errs = append(errs, errors.New("BIRL_MINIO_ENDPOINT is required for minio storage"))
		}
		if s.Minio.Bucket == "" {
			errs = append(errs, errors.New("BIRL_MINIO_BUCKET is required for minio storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", s.Storage))
	}
	if s.Namespace == "" {
		errs = append(errs, errors.New("BIRL_NAMESPACE must not be empty"))
	}
	if s.Cache.Tier1Capacity <= 0 {
		errs = append(errs, fmt.Errorf("BIRL_TIER1_CAPACITY must be positive, got %d", s.Cache.Tier1Capacity))
	}
	if s.Fetch.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("BIRL_FETCH_CONCURRENCY must be positive, got %d", s.Fetch.Concurrency))
	}
	if s.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("BIRL_REQUEST_TIMEOUT must be positive, got %s", s.RequestTimeout))
	}
	if s.HTTP.WriteTimeout > 0 && s.HTTP.WriteTimeout < s.RequestTimeout {
		errs = append(errs, fmt.Errorf("BIRL_HTTP_WRITE_TIMEOUT (%s) must not be shorter than BIRL_REQUEST_TIMEOUT (%s)",
			s.HTTP.WriteTimeout, s.RequestTimeout))
	}
	if s.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("BIRL_HTTP_SHUTDOWN_TIMEOUT must be positive, got %s", s.HTTP.ShutdownTimeout))
	}
	if s.Image.JPEGQuality < 1 || s.Image.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("BIRL_JPEG_QUALITY must be within 1..100, got %d", s.Image.JPEGQuality))
	}
	return errors.Join(errs...)
}
