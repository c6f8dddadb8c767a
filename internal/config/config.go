package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL string // CFGSVC_DATABASE_URL (required)
	HTTPAddr    string // CFGSVC_HTTP_ADDR (default ":8080")
	NATSURL     string // CFGSVC_NATS_URL (optional, empty = no events)
	AuthToken   string // CFGSVC_AUTH_TOKEN (optional, empty = auth disabled)

	// MDMS schema registry
	MDMSHost       string // CFGSVC_MDMS_HOST (optional, empty = schema validation disabled)
	MDMSSchemaPath string // CFGSVC_MDMS_SCHEMA_PATH (default "/mdms-v2/schema/v1/_search")

	// Search defaults
	DefaultLimit  int // CFGSVC_DEFAULT_LIMIT (default 10)
	DefaultOffset int // CFGSVC_DEFAULT_OFFSET (default 0)

	// Snapshot export settings
	ExportInterval   time.Duration // CFGSVC_EXPORT_INTERVAL (default 3m; 0 = disabled)
	ExportS3Bucket   string        // CFGSVC_EXPORT_S3_BUCKET (enables S3 when set)
	ExportS3Endpoint string        // CFGSVC_EXPORT_S3_ENDPOINT (custom endpoint for MinIO)
	ExportS3Region   string        // CFGSVC_EXPORT_S3_REGION (default "us-east-1")
	ExportS3Key      string        // CFGSVC_EXPORT_S3_KEY (default "config/snapshot.jsonl")
	ExportGitRepo    string        // CFGSVC_EXPORT_GIT_REPO (enables git when set; path to clone)
	ExportGitFile    string        // CFGSVC_EXPORT_GIT_FILE (default "config-snapshot.jsonl")
	ExportGitBranch  string        // CFGSVC_EXPORT_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:      os.Getenv("CFGSVC_DATABASE_URL"),
		HTTPAddr:         envOrDefault("CFGSVC_HTTP_ADDR", ":8080"),
		NATSURL:          os.Getenv("CFGSVC_NATS_URL"),
		AuthToken:        os.Getenv("CFGSVC_AUTH_TOKEN"),
		MDMSHost:         os.Getenv("CFGSVC_MDMS_HOST"),
		MDMSSchemaPath:   envOrDefault("CFGSVC_MDMS_SCHEMA_PATH", "/mdms-v2/schema/v1/_search"),
		ExportS3Bucket:   os.Getenv("CFGSVC_EXPORT_S3_BUCKET"),
		ExportS3Endpoint: os.Getenv("CFGSVC_EXPORT_S3_ENDPOINT"),
		ExportS3Region:   envOrDefault("CFGSVC_EXPORT_S3_REGION", "us-east-1"),
		ExportS3Key:      envOrDefault("CFGSVC_EXPORT_S3_KEY", "config/snapshot.jsonl"),
		ExportGitRepo:    os.Getenv("CFGSVC_EXPORT_GIT_REPO"),
		ExportGitFile:    envOrDefault("CFGSVC_EXPORT_GIT_FILE", "config-snapshot.jsonl"),
		ExportGitBranch:  envOrDefault("CFGSVC_EXPORT_GIT_BRANCH", "main"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("CFGSVC_DATABASE_URL is required")
	}

	var err error
	c.DefaultLimit, err = envOrDefaultInt("CFGSVC_DEFAULT_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	c.DefaultOffset, err = envOrDefaultInt("CFGSVC_DEFAULT_OFFSET", 0)
	if err != nil {
		return nil, err
	}

	intervalStr := envOrDefault("CFGSVC_EXPORT_INTERVAL", "3m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("CFGSVC_EXPORT_INTERVAL: %w", err)
		}
		c.ExportInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
