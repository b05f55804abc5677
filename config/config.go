package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds runtime settings read from the environment.
// All fields are optional; zero values fall back to local defaults.
type Config struct {
	// Port for the HTTP API server
	Port string

	// DataDir holds the project database and export scratch space
	DataDir string

	// FFmpegBin overrides the ffmpeg binary discovered on PATH
	FFmpegBin string

	// S3 upload of finished renders; disabled when Bucket is empty
	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool
}

// Load reads configuration from the environment. Callers are expected to
// have loaded .env beforehand (godotenv in main).
func Load() Config {
	cfg := Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		DataDir:        getEnvOrDefault("REELCUT_DATA_DIR", defaultDataDir()),
		FFmpegBin:      strings.TrimSpace(os.Getenv("FFMPEG_BIN")),
		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3Prefix:       strings.TrimSpace(os.Getenv("S3_PREFIX")),
		S3UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}
	if cfg.S3Prefix != "" {
		cfg.S3Prefix = strings.Trim(cfg.S3Prefix, "/") + "/"
	}
	return cfg
}

// DatabasePath is the location of the project store.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "projects.db")
}

// ScratchDir is the export pipeline's intermediate-file namespace.
func (c Config) ScratchDir() string {
	return filepath.Join(c.DataDir, "scratch")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reelcut"
	}
	return filepath.Join(home, ".reelcut")
}

func getEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
