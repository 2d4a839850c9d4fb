package kinopoiskmock

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/kinoswap/searchqa/internal/model"
)

const (
	headerAPIKey = "X-API-KEY"

	defaultLimit = 10
	maxLimit     = 250
)

type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	Error      string `json:"error"`
}

type apiController struct {
	token     string
	catalogue []model.Movie
}

func newAPIController(token string, catalogue []model.Movie) *apiController {
	return &apiController{
		token:     token,
		catalogue: catalogue,
	}
}

func (c *apiController) RegisterRoutes(router *gin.RouterGroup) {
	router.Use(c.authorize)
	router.GET("/movie", c.movies)
	router.GET("/movie/search", c.search)
}

func (c *apiController) authorize(ctx *gin.Context) {
	key := ctx.GetHeader(headerAPIKey)
	switch {
	case key == "":
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			StatusCode: http.StatusUnauthorized,
			Message:    "В запросе не указан токен!",
			Error:      "Unauthorized",
		})
	case key != c.token:
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			StatusCode: http.StatusUnauthorized,
			Message:    "Переданный токен некорректен!",
			Error:      "Unauthorized",
		})
	default:
		ctx.Next()
	}
}

func (c *apiController) movies(ctx *gin.Context) {
	limit, page, err := paging(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	years, err := parseYears(ctx.Query("year"))
	if err != nil {
		badRequest(ctx, err)
		return
	}

	f := filter{
		years:     years,
		kind:      ctx.Query("type"),
		genres:    ctx.QueryArray("genres.name"),
		countries: ctx.QueryArray("countries.name"),
	}

	found := make([]model.Movie, 0, len(c.catalogue))
	for _, m := range c.catalogue {
		if f.match(m) {
			found = append(found, m)
		}
	}

	ctx.JSON(http.StatusOK, paginate(found, limit, page))
}

func (c *apiController) search(ctx *gin.Context) {
	limit, page, err := paging(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	query := ctx.Query("query")
	found := make([]model.Movie, 0)
	for _, m := range c.catalogue {
		if matchQuery(query, m.Name, m.AlternativeName, m.EnName) {
			found = append(found, m)
		}
	}

	ctx.JSON(http.StatusOK, paginate(found, limit, page))
}

func paging(ctx *gin.Context) (int, int, error) {
	limit, err := positiveInt(ctx, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit > maxLimit {
		return 0, 0, fmt.Errorf("Значение поля limit должно быть не больше %d!", maxLimit)
	}
	page, err := positiveInt(ctx, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	if page > math.MaxInt/limit {
		return 0, 0, fmt.Errorf("Значение поля page должно быть не больше %d!", math.MaxInt/limit)
	}
	return limit, page, nil
}

func positiveInt(ctx *gin.Context, key string, defaultValue int) (int, error) {
	raw, ok := ctx.GetQuery(key)
	if !ok {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("Значение поля %s должно быть положительным числом!", key)
	}
	return n, nil
}

func paginate(movies []model.Movie, limit, page int) model.MoviesPage {
	total := len(movies)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return model.MoviesPage{
		Docs:  movies[start:end],
		Total: total,
		Limit: limit,
		Page:  page,
		Pages: (total + limit - 1) / limit,
	}
}

func badRequest(ctx *gin.Context, err error) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    []string{err.Error()},
		Error:      "Bad Request",
	})
}
