package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	infra_kinopoisk "github.com/humanbelnik/kinoswap/searchqa/internal/infra/kinopoisk"
	"github.com/humanbelnik/kinoswap/searchqa/internal/model"
	"github.com/humanbelnik/kinoswap/searchqa/internal/page"
)

// stepper runs one named step of a scenario. The runner prints steps, the
// test suites record them in the report.
type stepper func(name string, fn func() error) error

type apiCheck struct {
	name  string
	check func(resp *infra_kinopoisk.Response) error
}

type apiScenario struct {
	story  string
	title  string
	path   string
	params url.Values
	checks []apiCheck
}

func apiScenarios() []apiScenario {
	return []apiScenario{
		{
			story: "Search by year and genre",
			title: "GET /movie - crime movies of 2025",
			path:  infra_kinopoisk.MoviePath,
			params: infra_kinopoisk.MovieFilter{
				Year:   2025,
				Genres: []string{"криминал"},
				Limit:  10,
			}.Values(),
			checks: []apiCheck{statusOK(), docsList()},
		},
		{
			story: "Search by several genres and year",
			title: "GET /movie - thrillers that are also dramas, 2025",
			path:  infra_kinopoisk.MoviePath,
			params: infra_kinopoisk.MovieFilter{
				Year:   2025,
				Genres: []string{infra_kinopoisk.AllOf("триллер"), infra_kinopoisk.AllOf("драма")},
				Limit:  5,
			}.Values(),
			checks: []apiCheck{statusOK(), hasField("docs")},
		},
		{
			story: "Search by one genre",
			title: "GET /movie - 5 action movies",
			path:  infra_kinopoisk.MoviePath,
			params: infra_kinopoisk.MovieFilter{
				Genres: []string{"боевик"},
				Limit:  5,
			}.Values(),
			checks: []apiCheck{statusOK()},
		},
		{
			story: "Filter by content type",
			title: "GET /movie - 5 cartoons",
			path:  infra_kinopoisk.MoviePath,
			params: infra_kinopoisk.MovieFilter{
				Type:  model.TypeCartoon,
				Limit: 5,
			}.Values(),
			checks: []apiCheck{statusOK(), allOfType(model.TypeCartoon)},
		},
		{
			story: "Search by title",
			title: "GET /movie/search - 'Матрица революция'",
			path:  infra_kinopoisk.SearchPath,
			params: infra_kinopoisk.SearchQuery{
				Query: "Матрица революция",
				Limit: 1,
			}.Values(),
			checks: []apiCheck{statusOK(), nameContains("Матрица: Революция")},
		},
	}
}

func (sc apiScenario) run(ctx context.Context, c *infra_kinopoisk.Client, step stepper) error {
	var resp *infra_kinopoisk.Response
	name := fmt.Sprintf("Send GET %s with params: %s", c.URL(sc.path, nil), describe(sc.params))
	err := step(name, func() error {
		var err error
		resp, err = c.Get(ctx, sc.path, sc.params)
		return err
	})
	if err != nil {
		return err
	}

	for _, ch := range sc.checks {
		if err := step("Check: "+ch.name, func() error { return ch.check(resp) }); err != nil {
			return err
		}
	}
	return nil
}

func statusOK() apiCheck {
	return apiCheck{
		name: "status code is 200 (OK)",
		check: func(resp *infra_kinopoisk.Response) error {
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d, want %d: %s", resp.StatusCode, http.StatusOK, excerpt(resp.Body))
			}
			return nil
		},
	}
}

func hasField(field string) apiCheck {
	return apiCheck{
		name: fmt.Sprintf("body contains the %q key", field),
		check: func(resp *infra_kinopoisk.Response) error {
			fields, err := resp.Fields()
			if err != nil {
				return err
			}
			if _, ok := fields[field]; !ok {
				return fmt.Errorf("no %q key in %s", field, excerpt(resp.Body))
			}
			return nil
		},
	}
}

func docsList() apiCheck {
	return apiCheck{
		name: `body contains the "docs" key holding a list of movies`,
		check: func(resp *infra_kinopoisk.Response) error {
			if !resp.HasList("docs") {
				return fmt.Errorf(`"docs" is missing or not a list: %s`, excerpt(resp.Body))
			}
			return nil
		},
	}
}

func allOfType(kind string) apiCheck {
	return apiCheck{
		name: fmt.Sprintf("every returned item has type %q", kind),
		check: func(resp *infra_kinopoisk.Response) error {
			docs, err := movieDocs(resp)
			if err != nil {
				return err
			}
			for i, m := range docs {
				if m.Type != kind {
					return fmt.Errorf("docs[%d] %q has type %q, want %q", i, m.Name, m.Type, kind)
				}
			}
			return nil
		},
	}
}

func nameContains(fragment string) apiCheck {
	return apiCheck{
		name: fmt.Sprintf("results contain a movie named like %q", fragment),
		check: func(resp *infra_kinopoisk.Response) error {
			docs, err := movieDocs(resp)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(docs))
			for _, m := range docs {
				if strings.Contains(m.Name, fragment) {
					return nil
				}
				names = append(names, m.Name)
			}
			return fmt.Errorf("no movie name contains %q, got %q", fragment, names)
		},
	}
}

func movieDocs(resp *infra_kinopoisk.Response) ([]model.Movie, error) {
	if !resp.HasList("docs") {
		return nil, fmt.Errorf(`"docs" is missing or not a list: %s`, excerpt(resp.Body))
	}
	p, err := resp.Page()
	if err != nil {
		return nil, err
	}
	return p.Docs, nil
}

type uiStep struct {
	name string
	do   func(p *page.AdvancedSearch) error
}

type uiScenario struct {
	story string
	title string
	steps []uiStep
	check uiStep
}

func uiScenarios() []uiScenario {
	return []uiScenario{
		{
			story: "Search by movie title",
			title: "Search for 'Интерстеллар'",
			steps: []uiStep{enterTitle("Интерстеллар"), clickSearchMain()},
			check: titlesContain("Интерстеллар"),
		},
		{
			story: "Search by genre",
			title: "Search by genre 'фантастика'",
			steps: []uiStep{selectGenreFantastika(), clickSearchMain()},
			check: titlesNotEmpty("genre 'фантастика'"),
		},
		{
			story: "Search by actor",
			title: "Search by actor 'Леонардо ДиКаприо'",
			steps: []uiStep{enterActor("Леонардо ДиКаприо"), clickSearchActor()},
			check: titlesNotEmpty("actor 'Леонардо ДиКаприо'"),
		},
		{
			story: "Search by year",
			title: "Search for movies of 2020",
			steps: []uiStep{enterYear("2020"), clickSearchMain()},
			check: titlesNotEmpty("year 2020"),
		},
		{
			story: "Search by invalid title",
			title: "Search for a title that does not exist",
			steps: []uiStep{enterTitle("абракадабрафыв12345несуществующийфильм"), clickSearchMain()},
			check: emptyResultShown(),
		},
	}
}

func (sc uiScenario) run(p *page.AdvancedSearch, step stepper) error {
	if err := step("Open advanced search page "+p.URL(), p.Open); err != nil {
		return err
	}
	steps := append(append([]uiStep{}, sc.steps...), sc.check)
	for _, s := range steps {
		if err := step(s.name, func() error { return s.do(p) }); err != nil {
			return err
		}
	}
	return nil
}

func enterTitle(title string) uiStep {
	return uiStep{
		name: fmt.Sprintf("Enter movie title '%s'", title),
		do:   func(p *page.AdvancedSearch) error { return p.EnterTitle(title) },
	}
}

func enterActor(actor string) uiStep {
	return uiStep{
		name: fmt.Sprintf("Enter actor name '%s'", actor),
		do:   func(p *page.AdvancedSearch) error { return p.EnterActor(actor) },
	}
}

func enterYear(year string) uiStep {
	return uiStep{
		name: fmt.Sprintf("Enter year '%s'", year),
		do:   func(p *page.AdvancedSearch) error { return p.EnterYear(year) },
	}
}

func selectGenreFantastika() uiStep {
	return uiStep{
		name: "Select genre 'фантастика'",
		do:   (*page.AdvancedSearch).SelectGenreFantastika,
	}
}

func clickSearchMain() uiStep {
	return uiStep{
		name: "Click search button (main form)",
		do:   (*page.AdvancedSearch).ClickSearchMain,
	}
}

func clickSearchActor() uiStep {
	return uiStep{
		name: "Click search button (people form)",
		do:   (*page.AdvancedSearch).ClickSearchActor,
	}
}

func titlesContain(title string) uiStep {
	return uiStep{
		name: fmt.Sprintf("Check: '%s' is among search results", title),
		do: func(p *page.AdvancedSearch) error {
			titles, err := p.SearchResultTitles()
			if err != nil {
				return err
			}
			want := strings.ToLower(title)
			for _, t := range titles {
				if strings.Contains(strings.ToLower(t), want) {
					return nil
				}
			}
			return fmt.Errorf("'%s' not found, got %q", title, titles)
		},
	}
}

func titlesNotEmpty(what string) uiStep {
	return uiStep{
		name: "Check: search results are not empty",
		do: func(p *page.AdvancedSearch) error {
			titles, err := p.SearchResultTitles()
			if err != nil {
				return err
			}
			if len(titles) == 0 {
				return fmt.Errorf("no search results for %s", what)
			}
			return nil
		},
	}
}

func emptyResultShown() uiStep {
	return uiStep{
		name: "Check: empty result message is shown",
		do: func(p *page.AdvancedSearch) error {
			present, err := p.IsEmptyResultMessagePresent()
			if err != nil {
				return err
			}
			if !present {
				return fmt.Errorf("empty result message not found")
			}
			return nil
		},
	}
}

// describe renders query params unescaped and sorted, for step names.
func describe(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, v := range params[k] {
			parts = append(parts, k+"="+v)
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func excerpt(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
