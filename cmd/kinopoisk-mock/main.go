package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/kinoswap/searchqa/internal/config"
	"github.com/humanbelnik/kinoswap/searchqa/internal/infra/kinopoiskmock"
)

const logtag = "[kinopoisk-mock]"

func main() {
	addr := getEnv("MOCK_ADDR", ":9191")
	token := getEnv(config.EnvAPIToken, "MOCK-TOKEN")

	gin.SetMode(getEnv(gin.EnvGinMode, gin.ReleaseMode))
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	server := kinopoiskmock.New(token, kinopoiskmock.WithLogger(logger))

	go func() {
		log.Printf("%s starting on %s, API under %s", logtag, addr, kinopoiskmock.APIPrefix)
		if err := server.Start(addr); err != nil {
			log.Fatalf("%s stopped: %v", logtag, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("%s shutting down...", logtag)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.Printf("%s shutdown: %v", logtag, err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
