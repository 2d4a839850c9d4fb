package page

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tebeka/selenium"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 500 * time.Millisecond

	noSuchElement = "no such element"
)

var (
	ErrTimeout    = errors.New("wait timed out")
	ErrNavigation = errors.New("navigation failed")
	ErrScript     = errors.New("script execution failed")
)

type Locator struct {
	By    string
	Value string
}

func XPath(expr string) Locator {
	return Locator{By: selenium.ByXPATH, Value: expr}
}

func (l Locator) String() string {
	return fmt.Sprintf("(%s, %s)", l.By, l.Value)
}

// TimeoutError reports a wait whose condition did not hold in time.
type TimeoutError struct {
	Target    string
	Condition string
	Timeout   time.Duration
	Err       error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s did not become %s within %s: %v", e.Target, e.Condition, e.Timeout, e.Err)
}

func (e *TimeoutError) Unwrap() []error {
	return []error{ErrTimeout, e.Err}
}

// Base wraps a WebDriver handle opened on one page URL.
type Base struct {
	driver selenium.WebDriver
	url    string
	poll   time.Duration

	logger *slog.Logger
}

type Option func(*Base)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Base) {
		b.logger = logger
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(b *Base) {
		if d > 0 {
			b.poll = d
		}
	}
}

func NewBase(driver selenium.WebDriver, url string, opts ...Option) *Base {
	b := &Base{
		driver: driver,
		url:    url,
		poll:   DefaultPollInterval,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Base) Driver() selenium.WebDriver {
	return b.driver
}

func (b *Base) URL() string {
	return b.url
}

func (b *Base) Open() error {
	b.logger.Debug("opening page", slog.String("url", b.url))
	if err := b.driver.Get(b.url); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNavigation, b.url, err)
	}
	return nil
}

// FindElement waits until an element matching loc is present in the DOM.
// A timeout <= 0 means DefaultTimeout, as for every wait below.
func (b *Base) FindElement(loc Locator, timeout time.Duration) (selenium.WebElement, error) {
	var found selenium.WebElement
	err := b.waitFor(loc, "present", timeout, func() (bool, error) {
		el, err := b.driver.FindElement(loc.By, loc.Value)
		if err != nil {
			return false, lookupErr(loc, err)
		}
		found = el
		return true, nil
	})
	return found, err
}

// FindElements waits until at least one element matching loc is present.
func (b *Base) FindElements(loc Locator, timeout time.Duration) ([]selenium.WebElement, error) {
	var found []selenium.WebElement
	err := b.waitFor(loc, "present", timeout, func() (bool, error) {
		els, err := b.driver.FindElements(loc.By, loc.Value)
		if err != nil {
			return false, lookupErr(loc, err)
		}
		if len(els) == 0 {
			return false, nil
		}
		found = els
		return true, nil
	})
	return found, err
}

// WaitForElementClickable waits until the element is displayed and enabled.
func (b *Base) WaitForElementClickable(loc Locator, timeout time.Duration) (selenium.WebElement, error) {
	return b.waitForState(loc, "clickable", timeout, func(el selenium.WebElement) bool {
		displayed, err := el.IsDisplayed()
		if err != nil || !displayed {
			return false
		}
		enabled, err := el.IsEnabled()
		return err == nil && enabled
	})
}

// WaitForElementVisible waits until the element is displayed.
func (b *Base) WaitForElementVisible(loc Locator, timeout time.Duration) (selenium.WebElement, error) {
	return b.waitForState(loc, "visible", timeout, func(el selenium.WebElement) bool {
		displayed, err := el.IsDisplayed()
		return err == nil && displayed
	})
}

// WaitForPageLoad waits for document.readyState to reach "complete".
func (b *Base) WaitForPageLoad(timeout time.Duration) error {
	return b.WaitUntil("document", "loaded", timeout, func(wd selenium.WebDriver) (bool, error) {
		state, err := wd.ExecuteScript("return document.readyState", nil)
		if err != nil {
			return false, fmt.Errorf("%w: document.readyState: %w", ErrScript, err)
		}
		return state == "complete", nil
	})
}

// WaitUntil polls cond until it holds. Errors returned by cond end the wait
// immediately and are returned unchanged.
func (b *Base) WaitUntil(target, condition string, timeout time.Duration, cond selenium.Condition) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var condErr error
	err := b.driver.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		ok, err := cond(wd)
		if err != nil {
			condErr = err
		}
		return ok, err
	}, timeout, b.poll)

	switch {
	case err == nil:
		return nil
	case condErr != nil:
		return condErr
	default:
		b.logger.Debug("wait timed out",
			slog.String("target", target),
			slog.String("condition", condition),
			slog.Duration("timeout", timeout))
		return &TimeoutError{Target: target, Condition: condition, Timeout: timeout, Err: err}
	}
}

func (b *Base) ScrollIntoView(el selenium.WebElement) error {
	return b.runScript("arguments[0].scrollIntoView({block:'center'});", el)
}

// ClickByScript dispatches the click from JavaScript, which works on
// elements covered by overlays.
func (b *Base) ClickByScript(el selenium.WebElement) error {
	return b.runScript("arguments[0].click();", el)
}

func (b *Base) runScript(script string, el selenium.WebElement) error {
	if _, err := b.driver.ExecuteScript(script, []interface{}{el}); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScript, script, err)
	}
	return nil
}

func (b *Base) waitFor(loc Locator, condition string, timeout time.Duration, probe func() (bool, error)) error {
	return b.WaitUntil("element by locator "+loc.String(), condition, timeout, func(selenium.WebDriver) (bool, error) {
		return probe()
	})
}

func (b *Base) waitForState(loc Locator, condition string, timeout time.Duration, ready func(selenium.WebElement) bool) (selenium.WebElement, error) {
	var found selenium.WebElement
	err := b.waitFor(loc, condition, timeout, func() (bool, error) {
		el, err := b.driver.FindElement(loc.By, loc.Value)
		if err != nil {
			return false, lookupErr(loc, err)
		}
		if !ready(el) {
			return false, nil
		}
		found = el
		return true, nil
	})
	return found, err
}

// lookupErr keeps the wait polling while the element is merely absent. Any
// other driver failure (dead session, bad locator) ends the wait.
func lookupErr(loc Locator, err error) error {
	var se *selenium.Error
	if errors.As(err, &se) && se.Err == noSuchElement {
		return nil
	}
	return fmt.Errorf("find element by locator %s: %w", loc, err)
}
