package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/drakos74/mlviz/infra/config"
	"github.com/drakos74/mlviz/internal/demo"
	"github.com/drakos74/mlviz/internal/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const name = "mlviz"

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	port := flag.Int("port", 6090, "port of the frame server")
	dir := flag.String("config", config.Path, "config directory")
	debug := flag.Bool("debug", false, "log every request and the demo state transitions")
	flag.Parse()

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var cfg demo.Config
	if err := config.Load(*dir, "demos", &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatal().Err(err).Msg("invalid config")
		}
		log.Warn().Str("dir", *dir).Msg("no demo config, using defaults")
	}

	demos, err := demo.All(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create demos")
	}
	loop, err := demo.NewLoop(demos...)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create loop")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go loop.Run(ctx, cfg.Interval())

	s := server.New(name, *port, loop, *debug)

	go func() {
		if err := s.Run(); err != nil {
			log.Error().Err(err).Msg("server stopped")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
}
