package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/matthewbaird/appforge/internal/corpus"
	"github.com/matthewbaird/appforge/internal/server"
)

func main() {
	// Missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	port := 8080
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	var store corpus.Store
	if path := os.Getenv("CORPUS_DB"); path != "" {
		s, err := corpus.Open(path)
		if err != nil {
			log.Fatalf("opening corpus store: %v", err)
		}
		defer s.Close()
		store = s
	}

	if err := server.Run(ctx, server.Config{Port: port, Corpus: store}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
