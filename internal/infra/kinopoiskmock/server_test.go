package kinopoiskmock

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/kinoswap/searchqa/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "TEST-TOKEN"

type MockServerSuite struct {
	suite.Suite
	srv *httptest.Server
}

func (s *MockServerSuite) BeforeAll(t provider.T) {
	gin.SetMode(gin.TestMode)
	s.srv = httptest.NewServer(New(testToken).Handler())
}

func (s *MockServerSuite) AfterAll(t provider.T) {
	s.srv.Close()
}

func (s *MockServerSuite) get(t provider.T, path string, params url.Values, token string) (int, []byte) {
	target := s.srv.URL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set(headerAPIKey, token)
	}

	resp, err := s.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func decodePage(t provider.T, body []byte) model.MoviesPage {
	var page model.MoviesPage
	require.NoError(t, json.Unmarshal(body, &page))
	return page
}

func (s *MockServerSuite) TestAuthorization(t provider.T) {
	tt := []struct {
		name       string
		token      string
		wantStatus int
		wantText   string
	}{
		{name: "missing token", token: "", wantStatus: http.StatusUnauthorized, wantText: "не указан токен"},
		{name: "wrong token", token: "nope", wantStatus: http.StatusUnauthorized, wantText: "некорректен"},
		{name: "valid token", token: testToken, wantStatus: http.StatusOK, wantText: `"docs"`},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t provider.T) {
			status, body := s.get(t, "/v1.4/movie", nil, tc.token)
			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, string(body), tc.wantText)
		})
	}
}

func (s *MockServerSuite) TestMovieFilters(t provider.T) {
	tt := []struct {
		name   string
		params url.Values
		check  func(t provider.T, page model.MoviesPage)
	}{
		{
			name:   "year and genre",
			params: url.Values{"year": {"2025"}, "genres.name": {"криминал"}, "limit": {"10"}},
			check: func(t provider.T, page model.MoviesPage) {
				assert.NotEmpty(t, page.Docs)
				for _, m := range page.Docs {
					assert.Equal(t, 2025, m.Year)
					assert.True(t, m.HasGenre("криминал"), m.Name)
				}
			},
		},
		{
			name:   "all of several genres",
			params: url.Values{"year": {"2025"}, "genres.name": {"+триллер", "+драма"}, "limit": {"5"}},
			check: func(t provider.T, page model.MoviesPage) {
				assert.NotEmpty(t, page.Docs)
				for _, m := range page.Docs {
					assert.True(t, m.HasGenre("триллер") && m.HasGenre("драма"), m.Name)
				}
			},
		},
		{
			name:   "any of several genres",
			params: url.Values{"genres.name": {"мультфильм", "криминал"}, "limit": {"250"}},
			check: func(t provider.T, page model.MoviesPage) {
				assert.NotEmpty(t, page.Docs)
				for _, m := range page.Docs {
					assert.True(t, m.HasGenre("мультфильм") || m.HasGenre("криминал"), m.Name)
				}
			},
		},
		{
			name:   "excluded genre",
			params: url.Values{"genres.name": {"боевик", "!фантастика"}},
			check: func(t provider.T, page model.MoviesPage) {
				assert.NotEmpty(t, page.Docs)
				for _, m := range page.Docs {
					assert.False(t, m.HasGenre("фантастика"), m.Name)
				}
			},
		},
		{
			name:   "type with limit",
			params: url.Values{"type": {"cartoon"}, "limit": {"1"}},
			check: func(t provider.T, page model.MoviesPage) {
				assert.Len(t, page.Docs, 1)
				assert.Equal(t, model.TypeCartoon, page.Docs[0].Type)
				assert.Equal(t, 1, page.Limit)
				assert.Equal(t, page.Total, page.Pages)
			},
		},
		{
			name:   "year range",
			params: url.Values{"year": {"2019-2020"}},
			check: func(t provider.T, page model.MoviesPage) {
				assert.NotEmpty(t, page.Docs)
				for _, m := range page.Docs {
					assert.True(t, m.Year >= 2019 && m.Year <= 2020, m.Name)
				}
			},
		},
		{
			name:   "page past the end",
			params: url.Values{"limit": {"10"}, "page": {"100"}},
			check: func(t provider.T, page model.MoviesPage) {
				assert.NotNil(t, page.Docs)
				assert.Empty(t, page.Docs)
				assert.Equal(t, 100, page.Page)
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t provider.T) {
			status, body := s.get(t, "/v1.4/movie", tc.params, testToken)
			require.Equal(t, http.StatusOK, status, string(body))
			tc.check(t, decodePage(t, body))
		})
	}
}

func (s *MockServerSuite) TestBadRequests(t provider.T) {
	for _, params := range []url.Values{
		{"limit": {"0"}},
		{"limit": {"251"}},
		{"page": {"x"}},
		{"limit": {"250"}, "page": {"9223372036854775807"}},
		{"year": {"soon"}},
		{"year": {"2025-2020"}},
	} {
		t.Run(params.Encode(), func(t provider.T) {
			status, body := s.get(t, "/v1.4/movie", params, testToken)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, string(body), "Bad Request")
		})
	}
}

func (s *MockServerSuite) TestStartStop(t provider.T) {
	t.WithNewStep("Stop ends a running server", func(sCtx provider.StepCtx) {
		srv := New(testToken)
		done := make(chan error, 1)
		go func() { done <- srv.Start("127.0.0.1:0") }()
		time.Sleep(50 * time.Millisecond)

		sCtx.Require().NoError(srv.Stop(context.Background()))
		select {
		case err := <-done:
			sCtx.Assert().NoError(err)
		case <-time.After(2 * time.Second):
			sCtx.Errorf("server still serving after Stop")
		}
	})

	t.WithNewStep("Stop before Start keeps the server down", func(sCtx provider.StepCtx) {
		srv := New(testToken)
		sCtx.Require().NoError(srv.Stop(context.Background()))

		done := make(chan error, 1)
		go func() { done <- srv.Start("127.0.0.1:0") }()
		select {
		case err := <-done:
			sCtx.Assert().NoError(err)
		case <-time.After(2 * time.Second):
			sCtx.Errorf("server started after Stop")
		}
	})
}

func (s *MockServerSuite) TestSearch(t provider.T) {
	status, body := s.get(t, "/v1.4/movie/search", url.Values{"query": {"Матрица революция"}, "limit": {"1"}}, testToken)
	require.Equal(t, http.StatusOK, status)

	page := decodePage(t, body)
	require.Len(t, page.Docs, 1)
	assert.Equal(t, "Матрица: Революция", page.Docs[0].Name)

	status, body = s.get(t, "/v1.4/movie/search", url.Values{"query": {"абракадабра"}}, testToken)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decodePage(t, body).Docs)
}

func (s *MockServerSuite) TestSearchForm(t provider.T) {
	status, body := s.get(t, SearchPath, nil, "")
	require.Equal(t, http.StatusOK, status)

	html := string(body)
	for _, id := range []string{`id="find_film"`, `id="find_people"`, `id="year"`, `id="m_act[genre]"`, `id="formSearchMain"`, `id="searchAdv"`} {
		assert.Contains(t, html, id)
	}
	assert.Equal(t, "фантастика", siteGenres[28])
	assert.Equal(t, 3, strings.Count(html, "<form "))
}

func (s *MockServerSuite) TestResults(t provider.T) {
	tt := []struct {
		name      string
		params    url.Values
		wantTitle string
		wantEmpty bool
	}{
		{name: "by title", params: url.Values{"m_act[find]": {"Интерстеллар"}}, wantTitle: "Интерстеллар"},
		{name: "by actor", params: url.Values{"m_act[actor]": {"Леонардо ДиКаприо"}}, wantTitle: "Начало"},
		{name: "by year", params: url.Values{"m_act[year]": {"2020"}}, wantTitle: "Довод"},
		{name: "by genre", params: url.Values{"m_act[genre][]": {"", "фантастика"}}, wantTitle: "Матрица"},
		{name: "nothing found", params: url.Values{"m_act[find]": {"абракадабрафыв12345несуществующийфильм"}}, wantEmpty: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t provider.T) {
			status, body := s.get(t, ResultsPath, tc.params, "")
			require.Equal(t, http.StatusOK, status)

			html := string(body)
			if tc.wantEmpty {
				assert.Contains(t, html, "ничего не найдено")
				assert.NotContains(t, html, `href="/film/`)
				return
			}
			assert.Contains(t, html, tc.wantTitle)
			assert.Contains(t, html, `href="/film/`)
			assert.NotContains(t, html, "ничего не найдено")
		})
	}
}

func TestMockServerSuite(t *testing.T) {
	suite.RunSuite(t, new(MockServerSuite))
}
