package page

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tebeka/selenium"
)

// Locators of https://www.kinopoisk.ru/s/. They follow the live markup of
// that page and break whenever it changes.
var (
	TitleInput = XPath(`//*[@id="find_film"]`)
	ActorInput = XPath(`//*[@id="find_people"]`)
	YearInput  = XPath(`//*[@id="year"]`)

	GenreFantastika = XPath(`//*[@id="m_act[genre]"]/option[30]`)

	SearchButtonMain  = XPath(`//*[@id="formSearchMain"]/input[11]`)
	SearchButtonActor = XPath(`//*[@id="searchAdv"]/form[3]/input[10]`)

	SearchResultTitles = XPath(`//a[contains(@href, "/film/")]`)
	EmptyResultMessage = XPath(`//*[contains(text(), "ничего не найдено") or contains(text(), "Не найдено")]`)
)

const (
	PageLoadTimeout      = 15 * time.Second
	SearchResultsTimeout = 15 * time.Second
	ProbeTimeout         = 5 * time.Second
)

type AdvancedSearch struct {
	*Base
}

func NewAdvancedSearch(driver selenium.WebDriver, url string, opts ...Option) *AdvancedSearch {
	return &AdvancedSearch{Base: NewBase(driver, url, opts...)}
}

func (p *AdvancedSearch) Open() error {
	if err := p.Base.Open(); err != nil {
		return err
	}
	return p.WaitForPageLoad(PageLoadTimeout)
}

func (p *AdvancedSearch) EnterTitle(title string) error {
	return p.fill(TitleInput, title)
}

func (p *AdvancedSearch) EnterActor(actor string) error {
	return p.fill(ActorInput, actor)
}

func (p *AdvancedSearch) EnterYear(year string) error {
	return p.fill(YearInput, year)
}

func (p *AdvancedSearch) SelectGenreFantastika() error {
	option, err := p.WaitForElementClickable(GenreFantastika, 0)
	if err != nil {
		return err
	}
	if err := p.ScrollIntoView(option); err != nil {
		return err
	}
	if err := option.Click(); err != nil {
		return fmt.Errorf("click %s: %w", GenreFantastika, err)
	}
	return nil
}

// ClickSearchMain submits the title/year/genre form.
func (p *AdvancedSearch) ClickSearchMain() error {
	return p.submit(SearchButtonMain)
}

// ClickSearchActor submits the people form.
func (p *AdvancedSearch) ClickSearchActor() error {
	return p.submit(SearchButtonActor)
}

// SearchResultTitles waits until the page shows either results or the
// empty-result message and returns the trimmed, non-empty result titles in
// document order. An empty-result page yields an empty slice.
func (p *AdvancedSearch) SearchResultTitles() ([]string, error) {
	err := p.WaitUntil("search results", "rendered", SearchResultsTimeout, func(wd selenium.WebDriver) (bool, error) {
		for _, loc := range []Locator{SearchResultTitles, EmptyResultMessage} {
			if ok, err := present(wd, loc); ok || err != nil {
				return ok, err
			}
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	elements, err := p.Driver().FindElements(SearchResultTitles.By, SearchResultTitles.Value)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", SearchResultTitles, err)
	}

	titles := make([]string, 0, len(elements))
	for _, el := range elements {
		text, err := el.Text()
		if err != nil {
			return nil, fmt.Errorf("read text of %s: %w", SearchResultTitles, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			titles = append(titles, text)
		}
	}

	p.logger.Debug("search results read", slog.Int("count", len(titles)))
	return titles, nil
}

// IsEmptyResultMessagePresent probes for the empty-result message for
// ProbeTimeout. Not finding it is a false answer, not an error.
func (p *AdvancedSearch) IsEmptyResultMessagePresent() (bool, error) {
	elements, err := p.FindElements(EmptyResultMessage, ProbeTimeout)
	if errors.Is(err, ErrTimeout) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(elements) > 0, nil
}

func (p *AdvancedSearch) fill(loc Locator, text string) error {
	field, err := p.WaitForElementClickable(loc, 0)
	if err != nil {
		return err
	}
	if err := field.Clear(); err != nil {
		return fmt.Errorf("clear %s: %w", loc, err)
	}
	if err := field.SendKeys(text); err != nil {
		return fmt.Errorf("type into %s: %w", loc, err)
	}
	p.logger.Debug("field filled", slog.String("locator", loc.Value), slog.String("text", text))
	return nil
}

func (p *AdvancedSearch) submit(loc Locator) error {
	button, err := p.WaitForElementClickable(loc, 0)
	if err != nil {
		return err
	}
	if err := p.ScrollIntoView(button); err != nil {
		return err
	}
	return p.ClickByScript(button)
}

func present(wd selenium.WebDriver, loc Locator) (bool, error) {
	els, err := wd.FindElements(loc.By, loc.Value)
	if err != nil {
		return false, lookupErr(loc, err)
	}
	return len(els) > 0, nil
}
