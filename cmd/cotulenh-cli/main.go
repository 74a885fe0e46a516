package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/mnoyd/cotulenh"
)

// CLI is the kong command-line schema for the REPL driver: no search, no
// "go"/"stop" (this is a rules engine, not an engine with a search), just
// position setup and the move/deploy/undo/perft debug commands a driver
// program or a human at a terminal needs.
var CLI struct {
	FEN      string `help:"Starting position FEN (defaults to the standard setup)." short:"f"`
	LogLevel string `help:"Log level: debug, info, warn, error." default:"warn" env:"COTULENH_LOG_LEVEL"`
	Cache    int64  `help:"Move cache capacity (parsed but not applied; games use a fixed-size cache)." default:"65536" env:"COTULENH_CACHE_SIZE"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("cotulenh-cli"),
		kong.Description("Interactive driver for the CoTuLenh rules engine."),
	)

	level, err := zerolog.ParseLevel(envOrDefault("COTULENH_LOG_LEVEL", CLI.LogLevel))
	if err != nil {
		level = zerolog.WarnLevel
	}
	cotulenh.SetLogLevel(level)
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	fen := CLI.FEN
	game, err := cotulenh.New(fen)
	if err != nil {
		logger.Fatal().Err(err).Str("fen", fen).Msg("could not load starting position")
	}

	NewREPL(game, logger).Run()
}
