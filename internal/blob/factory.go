package blob

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config selects and parameterizes the blob backend.
type Config struct {
	Driver      Driver `env:"SCHEDCORE_BLOB_DRIVER" envDefault:"fs"`
	FSRoot      string `env:"SCHEDCORE_BLOB_FS_ROOT" envDefault:"./blobdata"`
	S3Bucket    string `env:"SCHEDCORE_BLOB_S3_BUCKET"`
	S3Region    string `env:"SCHEDCORE_BLOB_S3_REGION"`
	S3Endpoint  string `env:"SCHEDCORE_BLOB_S3_ENDPOINT"`
	S3PathStyle bool   `env:"SCHEDCORE_BLOB_S3_PATH_STYLE"`
}

// LoadConfig reads the blob backend selection from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse blob env: %w", err)
	}
	return cfg, nil
}

// Open constructs the backend named by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverFilesystem:
		return NewFilesystem(cfg.FSRoot)
	case DriverS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("SCHEDCORE_BLOB_S3_BUCKET required for s3 driver")
		}
		return NewS3(ctx, S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", cfg.Driver)
	}
}
