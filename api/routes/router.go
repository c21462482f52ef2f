package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/secondnest/api/controllers"
	"github.com/angelmondragon/secondnest/api/middleware"
	"github.com/angelmondragon/secondnest/internal/catalog"
	"github.com/angelmondragon/secondnest/internal/chat"
	"github.com/angelmondragon/secondnest/internal/checkout"
	"github.com/angelmondragon/secondnest/internal/state"
	"github.com/angelmondragon/secondnest/pkg/config"
	"github.com/angelmondragon/secondnest/pkg/db"
	"github.com/angelmondragon/secondnest/pkg/logger"
	"github.com/angelmondragon/secondnest/pkg/metrics"
	"github.com/angelmondragon/secondnest/pkg/redis"
)

// Dependencies carries everything the HTTP surface needs. DB and Redis are optional.
type Dependencies struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	Catalog        catalog.Store
	State          state.Store
	Calculator     *checkout.Calculator
	Replies        chat.ReplyPicker
	Metrics        *metrics.Storefront
	MetricsHandler http.Handler
}

func NewRouter(deps Dependencies) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
	)

	ready := map[string]controllers.Pinger{}
	if deps.DB != nil {
		ready["db"] = deps.DB
	}
	if deps.Redis != nil {
		ready["redis"] = deps.Redis
	}

	var idempotencyStore redis.IdempotencyStore
	var limiter middleware.RateLimiterStore = middleware.NewMemoryRateLimiter()
	if deps.Redis != nil {
		idempotencyStore = deps.Redis
		limiter = deps.Redis
	}
	chatPolicy := middleware.NewRateLimitPolicy(
		"chat",
		cfg.ChatRateLimit.Window,
		cfg.ChatRateLimit.IPLimit,
		cfg.ChatRateLimit.SessionLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, ready))
	})

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	cartHandlers := controllers.CartHandlers{
		Catalog:    deps.Catalog,
		State:      deps.State,
		Calculator: deps.Calculator,
		Metrics:    deps.Metrics,
		Logger:     logg,
	}
	chatHandlers := controllers.ChatHandlers{
		Catalog: deps.Catalog,
		State:   deps.State,
		Replies: deps.Replies,
		Metrics: deps.Metrics,
		Logger:  logg,
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/listings", controllers.ListingsSearch(deps.Catalog, deps.Metrics, logg))
		r.Get("/listings/{listingID}", controllers.ListingDetail(deps.Catalog, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))
			r.Use(middleware.Idempotency(idempotencyStore, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandlers.Fetch())
				r.Delete("/", cartHandlers.Clear())
				r.Get("/totals", cartHandlers.Totals())
				r.Post("/items", cartHandlers.AddItem())
				r.Patch("/items/{listingID}", cartHandlers.UpdateItem())
				r.Delete("/items/{listingID}", cartHandlers.RemoveItem())
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", controllers.FavoritesList(deps.Catalog, deps.State, logg))
				r.Post("/{listingID}/toggle", controllers.FavoritesToggle(deps.Catalog, deps.State, deps.Metrics, logg))
			})

			r.Get("/listings/{listingID}/chat", chatHandlers.History())
			r.With(middleware.RateLimit(chatPolicy, limiter, logg)).
				Post("/listings/{listingID}/chat", chatHandlers.Send())
		})
	})

	return r
}
