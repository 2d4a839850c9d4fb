package kinopoiskmock

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/kinoswap/searchqa/internal/model"
)

const (
	SearchPath  = "/s/"
	ResultsPath = "/s/type/film/list/1/"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// siteGenres is the genre list of the search form in page order. The form
// prepends a "-" placeholder, so "фантастика" renders as the 30th option.
var siteGenres = []string{
	"аниме", "биография", "боевик", "вестерн", "военный",
	"детектив", "детский", "для взрослых", "документальный", "драма",
	"игра", "история", "комедия", "концерт", "короткометражка",
	"криминал", "мелодрама", "музыка", "мультфильм", "мюзикл",
	"новости", "приключения", "реальное ТВ", "семейный", "спорт",
	"ток-шоу", "триллер", "ужасы", "фантастика", "фильм-нуар",
	"фэнтези",
}

type siteController struct {
	catalogue []model.Movie
}

func newSiteController(catalogue []model.Movie) *siteController {
	return &siteController{catalogue: catalogue}
}

func (c *siteController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", c.index)
	router.GET(SearchPath, c.searchForm)
	router.GET(ResultsPath, c.results)
	router.GET("/film/:id/", c.film)
}

func (c *siteController) index(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "index.html", nil)
}

func (c *siteController) searchForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "search.html", gin.H{
		"Genres": siteGenres,
	})
}

func (c *siteController) results(ctx *gin.Context) {
	q := siteQuery{
		title:  strings.TrimSpace(ctx.Query("m_act[find]")),
		year:   strings.TrimSpace(ctx.Query("m_act[year]")),
		actor:  strings.TrimSpace(ctx.Query("m_act[actor]")),
		genres: nonEmpty(ctx.QueryArray("m_act[genre][]")),
	}

	found := make([]model.Movie, 0)
	for _, m := range c.catalogue {
		if q.match(m) {
			found = append(found, m)
		}
	}

	ctx.HTML(http.StatusOK, "results.html", gin.H{
		"Movies": found,
	})
}

func (c *siteController) film(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.Status(http.StatusNotFound)
		return
	}
	for _, m := range c.catalogue {
		if m.ID == id {
			ctx.HTML(http.StatusOK, "film.html", m)
			return
		}
	}
	ctx.Status(http.StatusNotFound)
}

type siteQuery struct {
	title  string
	year   string
	actor  string
	genres []string
}

func (q siteQuery) match(m model.Movie) bool {
	if q.title != "" && !matchQuery(q.title, m.Name, m.AlternativeName, m.EnName) {
		return false
	}
	if q.year != "" && strconv.Itoa(m.Year) != q.year {
		return false
	}
	for _, g := range q.genres {
		if !m.HasGenre(g) {
			return false
		}
	}
	if q.actor != "" {
		names := make([]string, 0, 2*len(m.Persons))
		for _, p := range m.Persons {
			names = append(names, p.Name, p.EnName)
		}
		if !matchQuery(q.actor, names...) {
			return false
		}
	}
	return true
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
