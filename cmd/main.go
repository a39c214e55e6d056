package main

import (
	"LearnTrack/internal/app"
	"LearnTrack/internal/config"
)

func main() {
	cfg := config.MustLoad()
	app.Run(cfg)
}
