package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/humanbelnik/kinoswap/searchqa/internal/config"
	infra_browser "github.com/humanbelnik/kinoswap/searchqa/internal/infra/browser"
	infra_kinopoisk "github.com/humanbelnik/kinoswap/searchqa/internal/infra/kinopoisk"
	"github.com/humanbelnik/kinoswap/searchqa/internal/page"
)

func main() {
	configPath := flag.String("config", "", "path env file")
	runAPI := flag.Bool("api", true, "run API scenarios")
	runUI := flag.Bool("ui", false, "run browser scenarios, needs chromedriver or WEBDRIVER_URL")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.MustLoad(*configPath)

	fmt.Println("Starting E2E scenarios for Kinopoisk search...")

	failed := 0
	if *runAPI {
		failed += runAPIScenarios(context.Background(), cfg, logger)
	}
	if *runUI {
		failed += runUIScenarios(cfg, logger)
	}

	if failed > 0 {
		fmt.Printf("\n %d scenario(s) failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("\n All E2E scenarios passed!")
}

func runAPIScenarios(ctx context.Context, cfg *config.Config, logger *slog.Logger) int {
	client, err := infra_kinopoisk.New(cfg.API, infra_kinopoisk.WithLogger(logger))
	if err != nil {
		fmt.Printf("API client setup failed: %v\n", err)
		return 1
	}

	failed := 0
	for i, sc := range apiScenarios() {
		fmt.Printf("\n API scenario %d: %s\n", i+1, sc.title)
		if err := sc.run(ctx, client, printStep); err != nil {
			fmt.Printf(" FAILED: %v\n", err)
			failed++
		}
	}
	return failed
}

func runUIScenarios(cfg *config.Config, logger *slog.Logger) int {
	failed := 0
	for i, sc := range uiScenarios() {
		fmt.Printf("\n UI scenario %d: %s\n", i+1, sc.title)
		if err := runUIScenario(cfg, logger, sc); err != nil {
			fmt.Printf(" FAILED: %v\n", err)
			failed++
		}
	}
	return failed
}

func runUIScenario(cfg *config.Config, logger *slog.Logger, sc uiScenario) error {
	session, err := infra_browser.NewSession(cfg.Browser, infra_browser.WithLogger(logger))
	if err != nil {
		return err
	}
	defer session.Close()

	p := page.NewAdvancedSearch(session.WebDriver, cfg.UI.AdvancedSearchURL, page.WithLogger(logger))
	return sc.run(p, printStep)
}

func printStep(name string, fn func() error) error {
	fmt.Printf("  - %s\n", name)
	return fn()
}
