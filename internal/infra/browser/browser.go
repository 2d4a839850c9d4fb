package infra_browser

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/searchqa/internal/config"
	"github.com/tebeka/selenium"
)

// hideWebdriverScript masks the automation flag that sites check before
// serving a captcha instead of the page.
const hideWebdriverScript = "Object.defineProperty(navigator, 'webdriver', {get: () => undefined})"

var (
	ErrDriverStart = errors.New("failed to start browser driver")
	ErrSessionInit = errors.New("failed to initialise browser session")
)

// Session is a browser owned by exactly one test. It must be closed by the
// owner whatever the test outcome.
type Session struct {
	selenium.WebDriver
	ID uuid.UUID

	service *selenium.Service
	logger  *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

type SessionOption func(*sessionOptions)

type sessionOptions struct {
	logger *slog.Logger
}

func WithLogger(logger *slog.Logger) SessionOption {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

// Capabilities builds the Chrome capabilities with the anti-detection
// switches applied.
func Capabilities(cfg config.Browser) selenium.Capabilities {
	args := []string{
		"--start-maximized",
		"--disable-blink-features=AutomationControlled",
	}
	if cfg.Headless {
		args = append(args, "--headless=new", "--window-size=1920,1080")
	}
	args = append(args, cfg.Args...)

	chromeOptions := map[string]any{
		"args":                   args,
		"excludeSwitches":        []string{"enable-automation"},
		"useAutomationExtension": false,
	}
	if cfg.Binary != "" {
		chromeOptions["binary"] = cfg.Binary
	}

	return selenium.Capabilities{
		"browserName":        "chrome",
		"goog:chromeOptions": chromeOptions,
	}
}

// NewSession opens a fresh browser. With an empty WebDriverURL a local
// chromedriver is started and owned by the session.
func NewSession(cfg config.Browser, opts ...SessionOption) (*Session, error) {
	o := &sessionOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	var (
		service *selenium.Service
		err     error
	)
	endpoint := cfg.WebDriverURL
	if endpoint == "" {
		service, err = selenium.NewChromeDriverService(cfg.ChromeDriverPath, cfg.ChromeDriverPort)
		if err != nil {
			return nil, fmt.Errorf("%w: chromedriver %s: %w", ErrDriverStart, cfg.ChromeDriverPath, err)
		}
		endpoint = fmt.Sprintf("http://localhost:%d", cfg.ChromeDriverPort)
	}

	wd, err := selenium.NewRemote(Capabilities(cfg), endpoint)
	if err != nil {
		if service != nil {
			_ = service.Stop()
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrDriverStart, endpoint, err)
	}

	s := newSession(wd, service, o.logger)
	if err := s.init(); err != nil {
		_ = s.Close()
		return nil, err
	}

	s.logger.Info("browser session opened", slog.String("endpoint", endpoint))
	return s, nil
}

func newSession(wd selenium.WebDriver, service *selenium.Service, logger *slog.Logger) *Session {
	id := uuid.New()
	return &Session{
		WebDriver: wd,
		ID:        id,
		service:   service,
		logger:    logger.With(slog.String("session", id.String())),
	}
}

func (s *Session) init() error {
	if _, err := s.ExecuteScript(hideWebdriverScript, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionInit, err)
	}
	return nil
}

// Close quits the browser and stops the owned driver service. Only the first
// call does the work; later calls return the same result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if err := s.Quit(); err != nil {
			errs = append(errs, fmt.Errorf("quit browser: %w", err))
		}
		if s.service != nil {
			if err := s.service.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("stop chromedriver: %w", err))
			}
		}
		s.closeErr = errors.Join(errs...)
		s.logger.Info("browser session closed", slog.Any("error", s.closeErr))
	})
	return s.closeErr
}

// Snapshot returns a PNG of the current viewport and the page URL, used to
// attach evidence to a failed test.
func (s *Session) Snapshot() ([]byte, string, error) {
	png, err := s.Screenshot()
	if err != nil {
		return nil, "", fmt.Errorf("screenshot: %w", err)
	}
	current, err := s.CurrentURL()
	if err != nil {
		return png, "", nil
	}
	return png, current, nil
}
