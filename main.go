package main

import (
	"os"

	"github.com/rs/zerolog"

	"pursuit/internal/config"
	"pursuit/internal/game"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	if err := game.RunDesktop(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("run")
	}
}
