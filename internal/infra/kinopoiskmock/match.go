package kinopoiskmock

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/humanbelnik/kinoswap/searchqa/internal/model"
)

type yearRange struct {
	from, to int
}

type filter struct {
	years     *yearRange
	kind      string
	genres    []string
	countries []string
}

func (f filter) match(m model.Movie) bool {
	if f.years != nil && (m.Year < f.years.from || m.Year > f.years.to) {
		return false
	}
	if f.kind != "" && m.Type != f.kind {
		return false
	}
	return matchValues(f.genres, m.HasGenre) && matchValues(f.countries, m.HasCountry)
}

// matchValues applies the API's multi-value semantics: plain values are
// alternatives, "+" values are all required, "!" values are all excluded.
func matchValues(values []string, has func(string) bool) bool {
	anyOf := 0
	anyMatched := false
	for _, v := range values {
		switch {
		case strings.HasPrefix(v, "+"):
			if !has(strings.TrimPrefix(v, "+")) {
				return false
			}
		case strings.HasPrefix(v, "!"):
			if has(strings.TrimPrefix(v, "!")) {
				return false
			}
		case v != "":
			anyOf++
			if has(v) {
				anyMatched = true
			}
		}
	}
	return anyOf == 0 || anyMatched
}

func parseYears(raw string) (*yearRange, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	from, to, isRange := strings.Cut(raw, "-")
	start, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return nil, fmt.Errorf("Значение поля year должно быть числом или диапазоном: %s", raw)
	}
	if !isRange {
		return &yearRange{from: start, to: start}, nil
	}

	end, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil || end < start {
		return nil, fmt.Errorf("Значение поля year должно быть числом или диапазоном: %s", raw)
	}
	return &yearRange{from: start, to: end}, nil
}

// matchQuery reports whether every word of query starts some word of one of
// the names. Case and punctuation are ignored.
func matchQuery(query string, names ...string) bool {
	queryWords := words(query)
	if len(queryWords) == 0 {
		return false
	}

	for _, name := range names {
		if name != "" && coversAll(queryWords, words(name)) {
			return true
		}
	}
	return false
}

func coversAll(queryWords, nameWords []string) bool {
	for _, qw := range queryWords {
		found := false
		for _, nw := range nameWords {
			if strings.HasPrefix(nw, qw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
