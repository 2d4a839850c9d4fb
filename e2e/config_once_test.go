//go:build e2e
// +build e2e

package main

import (
	"os"
	"sync"

	"github.com/humanbelnik/kinoswap/searchqa/internal/config"
)

var (
	cfg     *config.Config
	cfgOnce sync.Once
)

// getConfig aborts the test binary when the API token is missing.
func getConfig() *config.Config {
	cfgOnce.Do(func() {
		cfg = config.MustLoad(os.Getenv("E2E_ENV_FILE"))
	})
	return cfg
}
