package kinopoiskmock

import "github.com/humanbelnik/kinoswap/searchqa/internal/model"

func genres(names ...string) []model.Genre {
	out := make([]model.Genre, 0, len(names))
	for _, n := range names {
		out = append(out, model.Genre{Name: n})
	}
	return out
}

func countries(names ...string) []model.Country {
	out := make([]model.Country, 0, len(names))
	for _, n := range names {
		out = append(out, model.Country{Name: n})
	}
	return out
}

func actor(id int, name, enName string) model.Person {
	return model.Person{ID: id, Name: name, EnName: enName, Profession: "актеры"}
}

var (
	dicaprio    = actor(37859, "Леонардо ДиКаприо", "Leonardo DiCaprio")
	mcconaughey = actor(797, "Мэттью МакКонахи", "Matthew McConaughey")
	reeves      = actor(7836, "Киану Ривз", "Keanu Reeves")
	washington  = actor(1642542, "Джон Дэвид Вашингтон", "John David Washington")
)

// Catalogue returns the movies served by the mock. A fresh slice is built on
// every call so callers may modify it.
func Catalogue() []model.Movie {
	return []model.Movie{
		{
			ID: 258687, Name: "Интерстеллар", EnName: "Interstellar", AlternativeName: "Interstellar",
			Type: model.TypeMovie, Year: 2014,
			Genres:    genres("фантастика", "драма", "приключения"),
			Countries: countries("США", "Великобритания"),
			Persons:   []model.Person{mcconaughey},
			Rating:    model.Rating{KP: 8.6, IMDB: 8.7},
		},
		{
			ID: 447301, Name: "Начало", AlternativeName: "Inception",
			Type: model.TypeMovie, Year: 2010,
			Genres:    genres("фантастика", "боевик", "триллер", "драма", "детектив"),
			Countries: countries("США", "Великобритания"),
			Persons:   []model.Person{dicaprio},
			Rating:    model.Rating{KP: 8.7, IMDB: 8.8},
		},
		{
			ID: 462606, Name: "Волк с Уолл-стрит", AlternativeName: "The Wolf of Wall Street",
			Type: model.TypeMovie, Year: 2013,
			Genres:    genres("драма", "криминал", "биография", "комедия"),
			Countries: countries("США"),
			Persons:   []model.Person{dicaprio},
			Rating:    model.Rating{KP: 7.9, IMDB: 8.2},
		},
		{
			ID: 395787, Name: "Остров проклятых", AlternativeName: "Shutter Island",
			Type: model.TypeMovie, Year: 2009,
			Genres:    genres("триллер", "детектив", "драма"),
			Countries: countries("США"),
			Persons:   []model.Person{dicaprio},
			Rating:    model.Rating{KP: 8.5, IMDB: 8.2},
		},
		{
			ID: 301, Name: "Матрица", AlternativeName: "The Matrix",
			Type: model.TypeMovie, Year: 1999,
			Genres:    genres("фантастика", "боевик"),
			Countries: countries("США"),
			Persons:   []model.Person{reeves},
			Rating:    model.Rating{KP: 8.5, IMDB: 8.7},
		},
		{
			ID: 2756, Name: "Матрица: Революция", AlternativeName: "The Matrix Revolutions",
			Type: model.TypeMovie, Year: 2003,
			Genres:    genres("фантастика", "боевик"),
			Countries: countries("США", "Австралия"),
			Persons:   []model.Person{reeves},
			Rating:    model.Rating{KP: 7.7, IMDB: 6.7},
		},
		{
			ID: 1236063, Name: "Довод", AlternativeName: "Tenet",
			Type: model.TypeMovie, Year: 2020,
			Genres:    genres("фантастика", "боевик", "триллер"),
			Countries: countries("Великобритания", "США"),
			Persons:   []model.Person{washington},
			Rating:    model.Rating{KP: 7.6, IMDB: 7.3},
		},
		{
			ID: 1115098, Name: "Душа", AlternativeName: "Soul",
			Type: model.TypeCartoon, Year: 2020,
			Genres:    genres("мультфильм", "фэнтези", "комедия", "драма"),
			Countries: countries("США"),
			Rating:    model.Rating{KP: 8.1, IMDB: 8.0},
		},
		{
			ID: 679486, Name: "Тайна Коко", AlternativeName: "Coco",
			Type: model.TypeCartoon, Year: 2017,
			Genres:    genres("мультфильм", "фэнтези", "семейный"),
			Countries: countries("США"),
			Rating:    model.Rating{KP: 8.7, IMDB: 8.4},
		},
		{
			ID: 5161087, Name: "Тихая гавань", AlternativeName: "Quiet Harbour",
			Type: model.TypeMovie, Year: 2025,
			Genres:    genres("криминал", "драма"),
			Countries: countries("Россия"),
			Rating:    model.Rating{KP: 6.9},
		},
		{
			ID: 5161190, Name: "Последний свидетель", AlternativeName: "The Last Witness",
			Type: model.TypeMovie, Year: 2025,
			Genres:    genres("триллер", "драма", "криминал"),
			Countries: countries("Россия"),
			Rating:    model.Rating{KP: 7.1},
		},
		{
			ID: 5170342, Name: "Ночной рейс", AlternativeName: "Night Flight",
			Type: model.TypeMovie, Year: 2025,
			Genres:    genres("триллер", "боевик"),
			Countries: countries("США"),
			Rating:    model.Rating{KP: 6.4},
		},
		{
			ID: 1048334, Name: "Джокер", AlternativeName: "Joker",
			Type: model.TypeMovie, Year: 2019,
			Genres:    genres("триллер", "драма", "криминал"),
			Countries: countries("США", "Канада"),
			Rating:    model.Rating{KP: 8.0, IMDB: 8.4},
		},
		{
			ID: 1318972, Name: "Аркейн", AlternativeName: "Arcane",
			Type: model.TypeAnimatedSeries, Year: 2021,
			Genres:    genres("мультфильм", "фантастика", "боевик", "драма"),
			Countries: countries("США", "Франция"),
			Rating:    model.Rating{KP: 8.8, IMDB: 9.0},
		},
	}
}
