// Package main normalizes svg files into outline icons and prints the icon
// catalog.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	iconscmd "github.com/louisbranch/portfolio/internal/cmd/icons"
	"github.com/louisbranch/portfolio/internal/platform/config"
)

func main() {
	cfg, err := iconscmd.ParseConfig(flag.NewFlagSet("icons", flag.ExitOnError), os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix("[ICONS] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := iconscmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
