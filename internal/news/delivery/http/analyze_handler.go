package http

import (
	"errors"
	"net/http"

	"golang-news-globe/internal/news/dto"
	"golang-news-globe/internal/news/service"
	"golang-news-globe/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyzeHandler handles on-demand article analysis.
type AnalyzeHandler struct {
	analyzeService service.AnalyzeService
	logger         *logger.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(analyzeService service.AnalyzeService, logger *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyzeService: analyzeService, logger: logger}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalyzeHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/analyze-article", h.AnalyzeArticle)
}

// AnalyzeArticle godoc
// @Summary Analyze articles
// @Description Run a credibility check, a batch full analysis or a summary. The kind field selects the operation; type is accepted as an alias.
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   request body dto.AnalyzeArticleRequest true "Analysis request"
// @Success 200 {object} dto.CredibilityResult
// @Success 200 {object} dto.FullAnalysisResponse
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analyze-article [post]
func (h *AnalyzeHandler) AnalyzeArticle(c echo.Context) error {
	var req dto.AnalyzeArticleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	result, err := h.analyzeService.Analyze(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownKind) || errors.Is(err, service.ErrNoArticles) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to analyze article", logger.StringField("kind", string(req.ResolveKind())), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Analysis failed"})
	}
	return c.JSON(http.StatusOK, result)
}
