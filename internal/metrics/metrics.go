package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodgram_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// Recipe aggregate metrics
	RecipeMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_recipe_mutations_total",
			Help: "Recipe create, update and delete operations that were committed",
		},
		[]string{"operation"},
	)

	RecipeValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_recipe_validation_failures_total",
			Help: "Rejected recipe writes by failing field",
		},
		[]string{"field"},
	)

	// Interaction set metrics
	InteractionToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_interaction_toggles_total",
			Help: "Favorite, shopping cart and follow membership changes",
		},
		[]string{"set", "action", "result"},
	)

	ShoppingListBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_shopping_list_builds_total",
			Help: "Shopping list builds by result",
		},
		[]string{"result"},
	)

	IngredientCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foodgram_ingredient_cache_entries",
			Help: "Current number of cached ingredients",
		},
	)
)

// Middleware records request count and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		APIRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		APIRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Result labels an operation outcome for counters.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
