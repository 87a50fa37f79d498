package main

import (
	"os"
	"time"

	"baghchal/cli"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := baghchal(); err != nil {
		log.Fatal().Err(err).Msg("baghchal failed")
	}
}

func baghchal() error {
	root := cli.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
