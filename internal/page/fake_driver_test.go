package page

import (
	"errors"
	"fmt"
	"time"

	"github.com/tebeka/selenium"
)

type fakeElement struct {
	selenium.WebElement

	text       string
	hiddenFor  int
	disabled   bool
	clicks     int
	jsClicks   int
	scrolledTo int
	typed      string
	cleared    bool
}

func (e *fakeElement) IsDisplayed() (bool, error) {
	if e.hiddenFor > 0 {
		e.hiddenFor--
		return false, nil
	}
	return true, nil
}

func (e *fakeElement) IsEnabled() (bool, error) {
	return !e.disabled, nil
}

func (e *fakeElement) Click() error {
	e.clicks++
	return nil
}

func (e *fakeElement) Clear() error {
	e.cleared = true
	e.typed = ""
	return nil
}

func (e *fakeElement) SendKeys(keys string) error {
	e.typed += keys
	return nil
}

func (e *fakeElement) Text() (string, error) {
	return e.text, nil
}

// fakeDriver is an in-memory DOM keyed by locator value. Elements listed in
// absentFor stay invisible to lookups for the given number of calls.
type fakeDriver struct {
	selenium.WebDriver

	dom        map[string][]*fakeElement
	absentFor  map[string]int
	readyState string
	getErr     error
	// findErr, when set, fails every lookup the way a dead session does.
	findErr error

	visited []string
	scripts []string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		dom:        map[string][]*fakeElement{},
		absentFor:  map[string]int{},
		readyState: "complete",
	}
}

func (d *fakeDriver) put(loc Locator, els ...*fakeElement) {
	d.dom[loc.Value] = append(d.dom[loc.Value], els...)
}

func (d *fakeDriver) lookup(by, value string) []*fakeElement {
	if by != selenium.ByXPATH {
		return nil
	}
	if d.absentFor[value] > 0 {
		d.absentFor[value]--
		return nil
	}
	return d.dom[value]
}

func (d *fakeDriver) Get(url string) error {
	if d.getErr != nil {
		return d.getErr
	}
	d.visited = append(d.visited, url)
	return nil
}

func (d *fakeDriver) FindElement(by, value string) (selenium.WebElement, error) {
	if d.findErr != nil {
		return nil, d.findErr
	}
	els := d.lookup(by, value)
	if len(els) == 0 {
		return nil, &selenium.Error{
			Err:      "no such element",
			Message:  fmt.Sprintf("Unable to locate element: %s", value),
			HTTPCode: 404,
		}
	}
	return els[0], nil
}

func (d *fakeDriver) FindElements(by, value string) ([]selenium.WebElement, error) {
	if d.findErr != nil {
		return nil, d.findErr
	}
	els := d.lookup(by, value)
	out := make([]selenium.WebElement, 0, len(els))
	for _, el := range els {
		out = append(out, el)
	}
	return out, nil
}

func (d *fakeDriver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	d.scripts = append(d.scripts, script)

	if script == "return document.readyState" {
		return d.readyState, nil
	}
	if len(args) != 1 {
		return nil, errors.New("unexpected script arguments")
	}
	el, ok := args[0].(*fakeElement)
	if !ok {
		return nil, errors.New("argument is not an element")
	}
	switch script {
	case "arguments[0].click();":
		el.jsClicks++
	case "arguments[0].scrollIntoView({block:'center'});":
		el.scrolledTo++
	default:
		return nil, fmt.Errorf("unexpected script %q", script)
	}
	return nil, nil
}

// WaitWithTimeoutAndInterval mirrors the polling loop of the remote driver.
func (d *fakeDriver) WaitWithTimeoutAndInterval(condition selenium.Condition, timeout, interval time.Duration) error {
	start := time.Now()
	for {
		done, err := condition(d)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if elapsed := time.Since(start); elapsed > timeout {
			return fmt.Errorf("timeout after %v", elapsed)
		}
		time.Sleep(interval)
	}
}
