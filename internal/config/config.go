package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string     `yaml:"env" env:"ENV" env-default:"local"`
	BaseURL     string     `yaml:"base_url" env:"BASE_URL" env-default:"http://localhost:8080"`
	StoragePath string     `yaml:"storage_path" env:"STORAGE_PATH" env-default:"qr-tracker.db"`
	HTTPServer  HTTPServer `yaml:"http_server"`
	QR          QR         `yaml:"qr"`
	CodeLength  int        `yaml:"code_length" env:"CODE_LENGTH" env-default:"6"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type QR struct {
	Size        int    `yaml:"size" env:"QR_SIZE" env-default:"256"`
	OverlayPath string `yaml:"overlay_path" env:"QR_OVERLAY_PATH"`
	OverlaySize int    `yaml:"overlay_size" env:"QR_OVERLAY_SIZE" env-default:"60"`
}

// Load reads the yaml file named by CONFIG_PATH, falling back to
// environment variables only when no file is configured.
func Load() *Config {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			log.Fatalf("cannot read config %s: %v", path, err)
		}
		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from env: %v", err)
	}

	return &cfg
}
