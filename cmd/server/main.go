package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/w-h-a/recall/cmd/internal/wiring"
	httpserver "github.com/w-h-a/recall/server/http"
)

var (
	cfg struct {
		wiring.Config

		Address string `help:"Listen address for the HTTP server" default:":8080"`
	}
)

func main() {
	_ = kong.Parse(&cfg)

	client, err := wiring.NewClient(cfg.Config)
	if err != nil {
		log.Fatalf("failed to build client: %v", err)
	}
	defer client.Close()

	server := httpserver.NewServer(
		client,
		httpserver.WithAddress(cfg.Address),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
