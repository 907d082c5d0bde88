package http

import (
	"errors"
	"net/http"
	"strings"

	"golang-news-globe/internal/news/dto"
	"golang-news-globe/internal/news/service"
	"golang-news-globe/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NewsHandler handles HTTP requests for the news pipeline.
type NewsHandler struct {
	newsService service.NewsService
	logger      *logger.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsService service.NewsService, logger *logger.Logger) *NewsHandler {
	return &NewsHandler{newsService: newsService, logger: logger}
}

// RegisterRoutes registers the news routes to the Echo group.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/fetch-news", h.FetchNews)
	g.GET("/fetch-news", h.FetchNews)
	g.GET("/articles/:id", h.GetArticle)
	g.GET("/markers", h.GetMarkers)
	g.GET("/regional-news", h.GetRegionalNews)
}

// FetchNews godoc
// @Summary Fetch analyzed news
// @Description Aggregate headlines from the configured providers, analyze them and serve the result. Results are cached per scope for the freshness window unless forceRefresh is set.
// @Tags news
// @Accept  json
// @Produce  json
// @Param   request body dto.FetchNewsRequest false "Fetch options"
// @Success 200 {object} dto.FetchNewsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /fetch-news [post]
func (h *NewsHandler) FetchNews(c echo.Context) error {
	var req dto.FetchNewsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	resp, err := h.newsService.FetchNews(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Failed to fetch news", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch news"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetArticle godoc
// @Summary Get an article by ID
// @Description Get a single analyzed article from the latest results
// @Tags news
// @Produce  json
// @Param   id  path    string true    "Article ID"
// @Success 200 {object} entity.NewsArticle
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /articles/{id} [get]
func (h *NewsHandler) GetArticle(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid article ID"})
	}

	article, err := h.newsService.Article(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Article not found"})
		}
		h.logger.Error("Failed to get article", logger.StringField("id", id), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, article)
}

// GetMarkers godoc
// @Summary Get globe markers
// @Description Group the current global articles into one marker per coordinate
// @Tags news
// @Produce  json
// @Success 200 {object} dto.MarkersResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /markers [get]
func (h *NewsHandler) GetMarkers(c echo.Context) error {
	markers, err := h.newsService.Markers(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to build markers", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build markers"})
	}
	return c.JSON(http.StatusOK, markers)
}

// GetRegionalNews godoc
// @Summary Get the regional digest
// @Description Get the first matching headline for each configured region
// @Tags news
// @Produce  json
// @Success 200 {object} dto.RegionalNewsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /regional-news [get]
func (h *NewsHandler) GetRegionalNews(c echo.Context) error {
	digest, err := h.newsService.RegionalDigest(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No regional news available"})
		}
		h.logger.Error("Failed to build regional digest", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, digest)
}
