// Package main renders the site into the output directory.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	buildcmd "github.com/louisbranch/portfolio/internal/cmd/build"
)

func main() {
	cfg, err := buildcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[BUILD] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := buildcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("build failed: %v", err)
	}
}
