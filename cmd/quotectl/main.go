package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"go-quote-desk/internal/cli"
	"go-quote-desk/internal/config"
	"go-quote-desk/internal/session"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("quotectl: ")

	path := os.Getenv("QUOTECTL_CONFIG")
	if path == "" {
		path = config.DefaultClientConfigPath()
	}
	cfg, err := config.LoadClient(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", path, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	a := cli.NewApp(cfg, path, session.NewStore(config.Dir()))

	code := cli.Execute(ctx, a, os.Args[1:], os.Stdout, os.Stderr)
	a.Close()
	stop()
	os.Exit(code)
}
