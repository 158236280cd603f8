// Package metrics регистрирует prometheus-метрики портала и отдаёт
// обработчик для маршрута /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal счётчик HTTP-запросов по методу и маршруту.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_http_requests_total",
		Help: "Total number of HTTP requests handled by the portal.",
	}, []string{"method", "path"})

	// IndicatorFetchesTotal счётчик обращений к внешнему источнику индикаторов.
	IndicatorFetchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_indicator_fetches_total",
		Help: "Total number of requests issued to the economic indicator source.",
	})

	// IndicatorFetchErrorsTotal счётчик неудачных обращений к источнику.
	IndicatorFetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_indicator_fetch_errors_total",
		Help: "Total number of failed requests to the economic indicator source.",
	})

	// IndicatorCacheHitsTotal счётчик ответов из кеша индикаторов.
	IndicatorCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_indicator_cache_hits_total",
		Help: "Total number of indicator reads served from the in-memory cache.",
	})
)

// Handler возвращает HTTP-обработчик prometheus для маршрута /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
