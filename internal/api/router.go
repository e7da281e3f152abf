package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roostlabs/roost/internal/cache"
	"github.com/roostlabs/roost/internal/db"
	"github.com/roostlabs/roost/internal/embedding"
	"github.com/roostlabs/roost/internal/search"
	"github.com/roostlabs/roost/internal/semantic"
	"github.com/roostlabs/roost/pkg/config"
	"github.com/roostlabs/roost/pkg/logging"
)

// Router sets up API routes
type Router struct {
	db       *db.DB
	cache    *cache.Cache
	search   *search.Service
	semantic *semantic.Service
	logger   *zap.Logger
}

// NewRouter creates a new API router. A nil embedder makes the semantic
// service build its provider client from the resolved credentials.
func NewRouter(database *db.DB, redisCache *cache.Cache, cfg *config.Config, embedder embedding.Embedder) *Router {
	return &Router{
		db:       database,
		cache:    redisCache,
		search:   search.NewService(database),
		semantic: semantic.NewService(database, &cfg.Embedding, embedder),
		logger:   logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	engine.GET("/search", r.searchKeywordHandler)
	engine.GET("/search/semantic", r.searchSemanticHandler)
	engine.POST("/embeddings/run", r.embedHandler)
}
