package model

import "strings"

// Content types as reported by the `type` field of the API.
const (
	TypeMovie          = "movie"
	TypeTVSeries       = "tv-series"
	TypeCartoon        = "cartoon"
	TypeAnimatedSeries = "animated-series"
	TypeAnime          = "anime"
)

type Genre struct {
	Name string `json:"name"`
}

type Country struct {
	Name string `json:"name"`
}

type Person struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	EnName     string `json:"enName,omitempty"`
	Profession string `json:"profession,omitempty"`
}

type Rating struct {
	KP   float64 `json:"kp"`
	IMDB float64 `json:"imdb"`
}

// Movie is the subset of the API movie document the harness reads.
// Every field may be absent in a response.
type Movie struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	AlternativeName string    `json:"alternativeName,omitempty"`
	EnName          string    `json:"enName,omitempty"`
	Type            string    `json:"type"`
	Year            int       `json:"year"`
	Genres          []Genre   `json:"genres,omitempty"`
	Countries       []Country `json:"countries,omitempty"`
	Persons         []Person  `json:"persons,omitempty"`
	Rating          Rating    `json:"rating"`
}

type MoviesPage struct {
	Docs  []Movie `json:"docs"`
	Total int     `json:"total"`
	Limit int     `json:"limit"`
	Page  int     `json:"page"`
	Pages int     `json:"pages"`
}

func (m Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

func (m Movie) HasGenre(name string) bool {
	for _, g := range m.Genres {
		if strings.EqualFold(g.Name, name) {
			return true
		}
	}
	return false
}

func (m Movie) HasCountry(name string) bool {
	for _, c := range m.Countries {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// HasPerson matches either the localized or the English name.
func (m Movie) HasPerson(name string) bool {
	for _, p := range m.Persons {
		if strings.EqualFold(p.Name, name) || (p.EnName != "" && strings.EqualFold(p.EnName, name)) {
			return true
		}
	}
	return false
}
