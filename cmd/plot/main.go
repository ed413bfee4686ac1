package main

import (
	"flag"
	"os"
	"strings"

	"github.com/drakos74/mlviz/internal/rng"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func main() {
	sections := flag.String("sections", strings.Join(names(), ","), "comma separated sections to print")
	seed := flag.Int64("seed", 1, "seed of the random source, the current time if 0")
	flag.Parse()

	src := rng.Now()
	if *seed != 0 {
		src = rng.New(*seed)
	}
	if err := report(os.Stdout, strings.Split(*sections, ","), src); err != nil {
		log.Fatal().Err(err).Msg("could not print report")
	}
}
