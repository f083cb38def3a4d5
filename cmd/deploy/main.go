// Package main builds the site and publishes it with rsync over ssh.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	deploycmd "github.com/louisbranch/portfolio/internal/cmd/deploy"
)

func main() {
	cfg, err := deploycmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[DEPLOY] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := deploycmd.Run(ctx, cfg); err != nil {
		log.Fatalf("deploy failed: %v", err)
	}
}
