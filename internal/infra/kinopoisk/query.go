package infra_kinopoisk

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	ParamYear    = "year"
	ParamGenre   = "genres.name"
	ParamCountry = "countries.name"
	ParamType    = "type"
	ParamLimit   = "limit"
	ParamPage    = "page"
	ParamQuery   = "query"
)

// AllOf marks a genre or country value as mandatory: every returned movie
// must carry it.
func AllOf(name string) string {
	return "+" + name
}

// NoneOf marks a genre or country value as excluded.
func NoneOf(name string) string {
	return "!" + name
}

// MovieFilter is the query of GET /movie. Zero fields are omitted.
type MovieFilter struct {
	Year int
	// YearTo turns Year into the range Year-YearTo.
	YearTo    int
	Genres    []string
	Countries []string
	Type      string
	Limit     int
	Page      int
}

func (f MovieFilter) Values() url.Values {
	v := url.Values{}
	switch {
	case f.Year > 0 && f.YearTo > 0:
		v.Set(ParamYear, fmt.Sprintf("%d-%d", f.Year, f.YearTo))
	case f.Year > 0:
		v.Set(ParamYear, strconv.Itoa(f.Year))
	}
	for _, g := range f.Genres {
		v.Add(ParamGenre, g)
	}
	for _, c := range f.Countries {
		v.Add(ParamCountry, c)
	}
	if f.Type != "" {
		v.Set(ParamType, f.Type)
	}
	setPaging(v, f.Limit, f.Page)
	return v
}

// SearchQuery is the query of GET /movie/search.
type SearchQuery struct {
	Query string
	Limit int
	Page  int
}

func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	if q.Query != "" {
		v.Set(ParamQuery, q.Query)
	}
	setPaging(v, q.Limit, q.Page)
	return v
}

func setPaging(v url.Values, limit, page int) {
	if limit > 0 {
		v.Set(ParamLimit, strconv.Itoa(limit))
	}
	if page > 0 {
		v.Set(ParamPage, strconv.Itoa(page))
	}
}
