package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Storefront records catalog, cart and state activity.
type Storefront struct {
	searchDuration  prometheus.Histogram
	searchResults   prometheus.Histogram
	searches        *prometheus.CounterVec
	cartMutations   *prometheus.CounterVec
	favoriteToggles *prometheus.CounterVec
	stateFallbacks  *prometheus.CounterVec
	chatMessages    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewStorefront registers the storefront metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	s := &Storefront{
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_search_duration_seconds",
			Help:    "Duration of catalog searches in seconds.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_search_results",
			Help:    "Number of listings returned per search.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_searches_total",
			Help: "Catalog searches by sort option.",
		}, []string{"sort"}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Cart mutations by operation.",
		}, []string{"operation"}),
		favoriteToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "favorite_toggles_total",
			Help: "Favorite toggles by resulting membership.",
		}, []string{"state"}),
		stateFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "state_fallbacks_total",
			Help: "Persisted state entries replaced by their default because they were malformed.",
		}, []string{"key"}),
		chatMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Chat messages stored by sender role.",
		}, []string{"role"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route pattern and status class.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	reg.MustRegister(
		s.searchDuration,
		s.searchResults,
		s.searches,
		s.cartMutations,
		s.favoriteToggles,
		s.stateFallbacks,
		s.chatMessages,
		s.httpRequests,
		s.httpDuration,
	)
	return s
}

// ObserveSearch records one completed search.
func (s *Storefront) ObserveSearch(sort string, results int, duration time.Duration) {
	if s == nil || s.searches == nil {
		return
	}
	s.searches.WithLabelValues(normalizeLabel(sort, "none")).Inc()
	s.searchResults.Observe(float64(results))
	s.searchDuration.Observe(duration.Seconds())
}

// IncCartMutation counts a persisted cart change.
func (s *Storefront) IncCartMutation(operation string) {
	if s == nil || s.cartMutations == nil {
		return
	}
	s.cartMutations.WithLabelValues(normalizeLabel(operation, "unknown")).Inc()
}

// IncFavoriteToggle counts a toggle by its outcome.
func (s *Storefront) IncFavoriteToggle(favorited bool) {
	if s == nil || s.favoriteToggles == nil {
		return
	}
	state := "removed"
	if favorited {
		state = "added"
	}
	s.favoriteToggles.WithLabelValues(state).Inc()
}

// IncStateFallback counts a malformed state entry.
func (s *Storefront) IncStateFallback(key string) {
	if s == nil || s.stateFallbacks == nil {
		return
	}
	s.stateFallbacks.WithLabelValues(normalizeLabel(key, "unknown")).Inc()
}

// IncChatMessage counts a stored chat message.
func (s *Storefront) IncChatMessage(role string) {
	if s == nil || s.chatMessages == nil {
		return
	}
	s.chatMessages.WithLabelValues(normalizeLabel(role, "unknown")).Inc()
}

// ObserveHTTP records a served request.
func (s *Storefront) ObserveHTTP(route, method string, status int, duration time.Duration) {
	if s == nil || s.httpRequests == nil {
		return
	}
	route = normalizeLabel(route, "unmatched")
	s.httpRequests.WithLabelValues(route, method, statusClass(status)).Inc()
	s.httpDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

func normalizeLabel(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
