// Command treasury is a terminal client for the fund-transfer HTTP API.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	addr := flag.String("addr", envOr("TREASURY_ADDR", "http://localhost:8080"), "base URL of the fund-transfer server")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	register(commander, &env{addr: addr, out: os.Stdout, errOut: os.Stderr})

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
