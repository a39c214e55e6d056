package app

import (
	"LearnTrack/internal/cli"
	"LearnTrack/internal/client/rest"
	"LearnTrack/internal/config"
	"LearnTrack/internal/service/learning"
	"LearnTrack/internal/storage/sqlite"
	"LearnTrack/pkg/logger"
	"os"
	"path/filepath"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Debug("starting with env: " + cfg.Env)

	api := rest.New(log, cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout)

	// The cache is best-effort: a broken local db must not take the CLI down.
	var cache learning.ProgressCache
	if cfg.Cache.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0o755); err != nil {
			log.Warn("could not create cache directory, continuing without cache", "error", err.Error())
		} else if db, err := sqlite.Open(cfg.Cache.Path); err != nil {
			log.Warn("could not open progress cache, continuing without cache", "error", err.Error())
		} else {
			defer db.Close()
			cache = sqlite.NewProgressCache(db)
		}
	}

	a := cli.New(log, api, cache)
	if err := a.Root().Execute(); err != nil {
		log.ErrorErr("command failed", err)
		os.Exit(1)
	}
}
