package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env   string `yaml:"env" env:"LEARNTRACK_ENV" env-default:"local"`
	API   API    `yaml:"api"`
	Cache Cache  `yaml:"cache"`
}

type API struct {
	BaseURL string        `yaml:"base_url" env:"LEARNTRACK_API_URL" env-default:"http://localhost:8000/api"`
	Token   string        `yaml:"token" env:"LEARNTRACK_TOKEN"`
	Timeout time.Duration `yaml:"timeout" env:"LEARNTRACK_API_TIMEOUT" env-default:"10s"`
}

type Cache struct {
	// Path of the local progress cache database; empty disables caching.
	Path string `yaml:"path" env:"LEARNTRACK_CACHE"`
}

// MustLoad reads the config file named by CONFIG_PATH, or environment
// variables alone when it is unset. The CLI should always come up, so the
// default cache path is derived rather than required.
func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("Config file not exist: %s", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("Can not read config file %s", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("Can not read environment config %s", err)
		}
	}

	if cfg.Cache.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Cache.Path = filepath.Join(home, ".learntrack", "cache.db")
		}
	}
	return &cfg
}
