package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roostlabs/roost/internal/cache"
	"github.com/roostlabs/roost/internal/embedding"
	"github.com/roostlabs/roost/internal/search"
	"github.com/roostlabs/roost/internal/semantic"
	"github.com/roostlabs/roost/pkg/telemetry"
)

const searchCacheTTL = 60 * time.Second

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	if err := r.db.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"service": "roost-api",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "roost-api",
	})
}

// searchKeywordHandler handles GET /search
func (r *Router) searchKeywordHandler(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "search.keyword")
	defer span.End()

	params, apiErr := parseSearchParams(c)
	if apiErr != nil {
		c.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}

	cacheKey := cache.HashKey(
		"search_keyword",
		params.Query,
		params.Author,
		formatDate(params.Since),
		formatDate(params.Until),
		strconv.Itoa(params.Limit),
	)
	if r.cache != nil {
		var cached []search.Result
		if err := r.cache.GetJSON(cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, resultsPayload(cached))
			return
		}
	}

	results, err := r.search.SearchKeyword(ctx, params)
	if err != nil {
		r.logger.Error("Keyword search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	if r.cache != nil {
		if err := r.cache.SetJSON(cacheKey, results, searchCacheTTL); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
			r.logger.Warn("Failed to cache search results", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, resultsPayload(results))
}

// searchSemanticHandler handles GET /search/semantic
func (r *Router) searchSemanticHandler(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "search.semantic")
	defer span.End()

	params, apiErr := parseSearchParams(c)
	if apiErr != nil {
		c.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}
	model := c.Query("model")

	results, err := r.semantic.SearchSemantic(ctx, params, model)
	if err != nil {
		switch {
		case errors.Is(err, semantic.ErrEmbeddingsUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, embedding.ErrMissingAPIKey):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			r.logger.Error("Semantic search failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "semantic search failed"})
		}
		return
	}

	c.JSON(http.StatusOK, resultsPayload(results))
}

type embedRequest struct {
	Model     string `json:"model"`
	BatchSize int    `json:"batch_size"`
}

// embedHandler handles POST /embeddings/run
func (r *Router) embedHandler(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "embeddings.run")
	defer span.End()

	var req embedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	count, err := r.semantic.EmbedPending(ctx, req.Model, req.BatchSize)
	if err != nil {
		if errors.Is(err, embedding.ErrMissingAPIKey) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		r.logger.Error("Embedding run failed",
			zap.Int("embedded", count),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error":    "embedding run aborted",
			"embedded": count,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"embedded": count})
}

// parseSearchParams reads the shared query parameters of both search
// endpoints. Dates are inclusive calendar days (2006-01-02).
func parseSearchParams(c *gin.Context) (search.Params, *Error) {
	params := search.Params{
		Query:  c.Query("q"),
		Author: c.Query("author"),
		Limit:  20,
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return params, NewError(http.StatusBadRequest, "limit must be a positive integer")
		}
		if limit > 100 {
			limit = 100
		}
		params.Limit = limit
	}

	since, apiErr := parseDate(c.Query("since"))
	if apiErr != nil {
		return params, apiErr
	}
	params.Since = since

	until, apiErr := parseDate(c.Query("until"))
	if apiErr != nil {
		return params, apiErr
	}
	params.Until = until

	return params, nil
}

func parseDate(raw string) (*time.Time, *Error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, NewError(http.StatusBadRequest, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", raw))
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func resultsPayload(results []search.Result) gin.H {
	if results == nil {
		results = []search.Result{}
	}
	return gin.H{
		"count":   len(results),
		"results": results,
	}
}
