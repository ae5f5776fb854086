package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/logger"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": domain.AgentVersion})
}

// analyze runs one pass. The optional min_confidence query parameter trims
// the returned narratives without touching the other result fields.
func (s *Server) analyze(c *gin.Context) {
	minConfidence, err := strconv.Atoi(c.DefaultQuery("min_confidence", "0"))
	if err != nil || minConfidence < 0 || minConfidence > 100 {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "Invalid request",
			Message: "min_confidence must be an integer between 0 and 100",
		})
		return
	}

	result, err := s.analysis.Analyze(c.Request.Context())
	if err != nil {
		logger.Error("http: analysis failed: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "Analysis failed",
			Message: err.Error(),
		})
		return
	}

	if minConfidence > 0 {
		filtered := *result
		filtered.Narratives = result.FilterByConfidence(minConfidence)
		result = &filtered
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) listPatterns(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalogue.List())
}

func (s *Server) getPattern(c *gin.Context) {
	pattern, err := s.catalogue.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "Pattern not found", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Lookup failed", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, pattern)
}

// defaultHistoryLimit caps history listings without a limit parameter.
const defaultHistoryLimit = 20

func (s *Server) listRuns(c *gin.Context) {
	limit, ok := historyLimit(c)
	if !ok {
		return
	}
	runs, err := s.history.ListRuns(c.Request.Context(), limit)
	if err != nil {
		logger.Error("http: list runs: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "History failed", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// getRun accepts a run ID or "latest".
func (s *Server) getRun(c *gin.Context) {
	result, err := s.history.GetRun(c.Request.Context(), c.Param("runId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "Run not found", Message: err.Error()})
			return
		}
		logger.Error("http: get run: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "History failed", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) narrativeHistory(c *gin.Context) {
	limit, ok := historyLimit(c)
	if !ok {
		return
	}
	points, err := s.history.NarrativeHistory(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		logger.Error("http: narrative history: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "History failed", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, points)
}

// historyLimit parses the limit query parameter, writing a 400 on failure.
func historyLimit(c *gin.Context) (int, bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultHistoryLimit)))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "Invalid request",
			Message: "limit must be a non-negative integer",
		})
		return 0, false
	}
	return limit, true
}
