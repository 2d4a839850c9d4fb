package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAPIToken = "KINOPOISK_API_TOKEN"

	defaultEnvFile = ".env"
)

var (
	ErrMissingToken = errors.New("api token not found")
	ErrInvalidValue = errors.New("invalid config value")
	ErrEnvFile      = errors.New("failed to read env file")
)

type API struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	RetryMax int
}

type UI struct {
	BaseURL           string
	AdvancedSearchURL string
}

type Browser struct {
	// WebDriverURL points at a running WebDriver endpoint (selenium grid,
	// standalone chromedriver). Empty means start chromedriver locally.
	WebDriverURL     string
	ChromeDriverPath string
	ChromeDriverPort int
	Headless         bool
	Binary           string
	Args             []string
}

type Config struct {
	API     API
	UI      UI
	Browser Browser
}

const logtag = "[config]"

// Load resolves the config from the process environment, falling back to the
// env file at path. Variables already set in the environment win over the file.
// An empty path means ".env", which is allowed to be absent.
func Load(path string) (*Config, error) {
	vars, err := readEnvFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(func(key string) string {
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return vars[key]
	})
}

// MustLoad is Load for process start-up: any error is fatal.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("%s %v", logtag, err)
	}
	return cfg
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		vars, err := godotenv.Read(defaultEnvFile)
		if err != nil {
			log.Printf("%s no %s file, using process env only", logtag, defaultEnvFile)
			return map[string]string{}, nil
		}
		log.Printf("%s using env from %s", logtag, defaultEnvFile)
		return vars, nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEnvFile, path, err)
	}
	log.Printf("%s using env from : %s", logtag, path)
	return vars, nil
}

// Parse builds the config from a lookup function. The API token is the only
// mandatory value.
func Parse(getenv func(string) string) (*Config, error) {
	r := &reader{getenv: getenv}

	token := strings.TrimSpace(getenv(EnvAPIToken))
	if token == "" {
		return nil, fmt.Errorf("%w: set %s in the environment or in the %s file",
			ErrMissingToken, EnvAPIToken, defaultEnvFile)
	}
	fmt.Printf("%s %s = %s\n", logtag, EnvAPIToken, mask(token))

	cfg := &Config{
		API: API{
			BaseURL:  strings.TrimRight(r.str("KINOPOISK_API_URL", "https://api.kinopoisk.dev/v1.4"), "/"),
			Token:    token,
			Timeout:  r.duration("KINOPOISK_API_TIMEOUT", 30*time.Second),
			RetryMax: r.integer("KINOPOISK_API_RETRY_MAX", 0),
		},
		UI: UI{
			BaseURL:           r.str("KINOPOISK_UI_URL", "https://www.kinopoisk.ru/"),
			AdvancedSearchURL: r.str("KINOPOISK_SEARCH_URL", "https://www.kinopoisk.ru/s/"),
		},
		Browser: Browser{
			WebDriverURL:     r.str("WEBDRIVER_URL", ""),
			ChromeDriverPath: r.str("CHROMEDRIVER_PATH", "chromedriver"),
			ChromeDriverPort: r.integer("CHROMEDRIVER_PORT", 9515),
			Headless:         r.boolean("BROWSER_HEADLESS", false),
			Binary:           r.str("BROWSER_BINARY", ""),
			Args:             r.list("BROWSER_ARGS"),
		},
	}
	if r.err != nil {
		return nil, r.err
	}
	if cfg.API.RetryMax < 0 {
		return nil, fmt.Errorf("%w: KINOPOISK_API_RETRY_MAX must not be negative", ErrInvalidValue)
	}

	return cfg, nil
}

// reader keeps the first conversion error so Parse can report it once.
type reader struct {
	getenv func(string) string
	err    error
}

func (r *reader) str(key, defaultValue string) string {
	val := strings.TrimSpace(r.getenv(key))
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func (r *reader) duration(key string, defaultValue time.Duration) time.Duration {
	raw := r.str(key, defaultValue.String())
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		r.fail(key, raw)
		return defaultValue
	}
	return d
}

func (r *reader) integer(key string, defaultValue int) int {
	raw := r.str(key, strconv.Itoa(defaultValue))
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(key, raw)
		return defaultValue
	}
	return n
}

func (r *reader) boolean(key string, defaultValue bool) bool {
	raw := r.str(key, strconv.FormatBool(defaultValue))
	b, err := strconv.ParseBool(raw)
	if err != nil {
		r.fail(key, raw)
		return defaultValue
	}
	return b
}

func (r *reader) list(key string) []string {
	raw := r.str(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (r *reader) fail(key, raw string) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, raw)
	}
}

func mask(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + strings.Repeat("*", len(token)-4)
}
