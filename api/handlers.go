package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/termindex/internal/metrics"
	"github.com/gcbaptista/termindex/services"
)

// API holds dependencies for API handlers, primarily the engine.
type API struct {
	engine  services.Engine
	metrics *metrics.Metrics
}

// NewAPI creates a new API handler structure. m may be nil, in which case
// /metrics is not served.
func NewAPI(engine services.Engine, m *metrics.Metrics) *API {
	return &API{
		engine:  engine,
		metrics: m,
	}
}

// SetupRoutes defines all the API routes.
func SetupRoutes(router *gin.Engine, engine services.Engine, m *metrics.Metrics) {
	apiHandler := NewAPI(engine, m)

	if m != nil {
		router.Use(MetricsMiddleware(m))
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Autocomplete routes
	autocompleteRoutes := router.Group("/autocomplete")
	{
		autocompleteRoutes.GET("", apiHandler.SuggestHandler)                         // Ranked suggestions for a prefix
		autocompleteRoutes.GET("/count", apiHandler.CountPrefixesHandler)             // Number of words under a prefix
		autocompleteRoutes.GET("/stats", apiHandler.AutocompleteStatsHandler)         // Vocabulary statistics
		autocompleteRoutes.POST("/words", apiHandler.AddWordsHandler)                 // Insert individual words
		autocompleteRoutes.POST("/vocabulary", apiHandler.LoadVocabularyHandler)      // Bulk load a vocabulary stream
		autocompleteRoutes.POST("/seed", apiHandler.SeedAutocompleteFromIndexHandler) // Load the index vocabulary (async)
	}

	// Index routes
	router.PUT("/corpus", apiHandler.PutCorpusHandler) // Rebuild the index from a corpus
	router.GET("/homepage", apiHandler.HomepageHandler)
	router.GET("/vocabulary", apiHandler.VocabularyHandler)
	router.GET("/search", apiHandler.SearchHandler)

	indexRoutes := router.Group("/index")
	{
		indexRoutes.GET("/stats", apiHandler.IndexStatsHandler)
		indexRoutes.POST("/rollback", apiHandler.RollbackHandler)
		indexRoutes.GET("/terms/:term", apiHandler.TermPostingsHandler)
		indexRoutes.GET("/documents", apiHandler.ForwardIndexHandler)
	}

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)              // List jobs, optionally by status
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      "termindex",
		"timestamp":    fmt.Sprintf("%d", time.Now().Unix()),
		"index":        api.engine.IndexStats(),
		"autocomplete": api.engine.AutocompleteStats(),
	})
}
