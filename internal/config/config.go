package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	NATS     NATSConfig     `yaml:"nats"`
	MinIO    MinIOConfig    `yaml:"minio"`
	Vision   VisionConfig   `yaml:"vision"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	MaxConns int    `yaml:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// VisionConfig points at the ONNX model weights and tunes session threading.
type VisionConfig struct {
	ModelsDir          string  `yaml:"models_dir"`
	DetectionThreshold float64 `yaml:"detection_threshold"`
	IntraOpThreads     int     `yaml:"intra_op_threads"`
	InterOpThreads     int     `yaml:"inter_op_threads"`
}

// PipelineConfig holds the `pipeline` section's processing defaults. Load
// parses and defaults it, but the HTTP handlers, the worker and the CLI do
// not read it; they take their options from a named preset.
type PipelineConfig struct {
	Preset            string        `yaml:"preset"`
	MinFaceConfidence float64       `yaml:"min_face_confidence"`
	RequireSingleFace bool          `yaml:"require_single_face"`
	MaxRetries        int           `yaml:"max_retries"`
	ProcessingTimeout time.Duration `yaml:"processing_timeout"`
	RoiStartLevel     int           `yaml:"roi_start_level"`
	EnableRoi         bool          `yaml:"enable_roi"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads config from YAML file and applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 20
	}
	if cfg.Vision.DetectionThreshold == 0 {
		cfg.Vision.DetectionThreshold = 0.8
	}
	if cfg.Pipeline.Preset == "" {
		cfg.Pipeline.Preset = "piv-balanced"
	}
	if cfg.Pipeline.MinFaceConfidence == 0 {
		cfg.Pipeline.MinFaceConfidence = 0.8
	}
	if cfg.Pipeline.MaxRetries == 0 {
		cfg.Pipeline.MaxRetries = 2
	}
	if cfg.Pipeline.ProcessingTimeout == 0 {
		cfg.Pipeline.ProcessingTimeout = 30 * time.Second
	}
	if cfg.Pipeline.RoiStartLevel == 0 {
		cfg.Pipeline.RoiStartLevel = 3
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PIV_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PIV_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("PIV_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("PIV_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("PIV_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("PIV_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("PIV_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("PIV_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("PIV_MINIO_ENDPOINT"); v != "" {
		cfg.MinIO.Endpoint = v
	}
	if v := os.Getenv("PIV_MINIO_ACCESS_KEY"); v != "" {
		cfg.MinIO.AccessKey = v
	}
	if v := os.Getenv("PIV_MINIO_SECRET_KEY"); v != "" {
		cfg.MinIO.SecretKey = v
	}
	if v := os.Getenv("PIV_MINIO_BUCKET"); v != "" {
		cfg.MinIO.Bucket = v
	}
	if v := os.Getenv("PIV_MODELS_DIR"); v != "" {
		cfg.Vision.ModelsDir = v
	}
	if v := os.Getenv("PIV_PRESET"); v != "" {
		cfg.Pipeline.Preset = v
	}
	if v := os.Getenv("PIV_MIN_FACE_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Pipeline.MinFaceConfidence = f
		}
	}
	if v := os.Getenv("PIV_PROCESSING_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Pipeline.ProcessingTimeout = d
		}
	}
}
