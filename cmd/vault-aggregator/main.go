package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/vaultscope/vault-aggregator/cmd/vault-aggregator/cli"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	if err := cli.Setup(); err != nil {
		panic(err)
	}
}
