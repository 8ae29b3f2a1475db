package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/preciousgifts/sugar-backend/internal/auth"
	"github.com/preciousgifts/sugar-backend/internal/domain"
	"github.com/preciousgifts/sugar-backend/internal/service"
	"github.com/preciousgifts/sugar-backend/pkg/health"
	"github.com/preciousgifts/sugar-backend/pkg/middleware"
)

// RouterDeps bundles the collaborators the router wires together.
type RouterDeps struct {
	AuthService     *service.AuthService
	ProductService  *service.ProductService
	RatingService   *service.RatingService
	CarouselService *service.CarouselService
	AuditService    *service.AuditService
	JWTManager      *auth.JWTManager
	HealthHandler   *health.Handler
	Logger          *slog.Logger
	CORS            CORSConfig
	RateLimitRPS    int
	RateLimitBurst  int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(deps.CORS))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.PrometheusMetrics("sugar-backend"))
	if deps.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(deps.RateLimitRPS, deps.RateLimitBurst, deps.Logger))
	}
	r.Use(AuditTrail(deps.AuditService))

	// Health check endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Token validator that bridges to the internal JWTManager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := deps.JWTManager.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID:   claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
			Role:     claims.Role,
		}, nil
	}
	requireAuth := middleware.Auth(tokenValidator)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	authHandler := NewAuthHandler(deps.AuthService, deps.Logger)
	productHandler := NewProductHandler(deps.ProductService, deps.Logger)
	ratingHandler := NewRatingHandler(deps.RatingService, deps.Logger)
	carouselHandler := NewCarouselHandler(deps.CarouselService, deps.Logger)
	logHandler := NewLogHandler(deps.AuditService, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Post("/sign-up", authHandler.SignUp)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/products", func(r chi.Router) {
			// Public catalog reads. Fixed paths register before the {id}
			// wildcard so chi matches them first.
			r.Group(func(r chi.Router) {
				r.Use(middleware.CacheControl(60))

				r.Get("/", productHandler.List)
				r.Get("/new-arrivals", productHandler.NewArrivals)
				r.Get("/featured", productHandler.Featured)
				r.Get("/festive-special", productHandler.FestiveSpecial)
				r.Get("/gifting", productHandler.Gifting)
				r.Get("/best-sellers", productHandler.BestSellers)
				r.Get("/{id}", productHandler.GetByID)
			})

			r.Get("/{productId}/ratings", ratingHandler.ListByProduct)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)

				r.Get("/{productId}/my-rating", ratingHandler.GetOwn)
			})

			// Catalog writes are admin only.
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)

				r.Post("/", productHandler.Create)
			})
		})

		r.Route("/ratings", func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(requireAuth)

			r.Post("/", ratingHandler.Submit)
			r.Put("/{ratingId}", ratingHandler.Update)
			r.Delete("/{ratingId}", ratingHandler.Delete)
		})

		r.Route("/utilities", func(r chi.Router) {
			// Public storefront reads.
			r.Group(func(r chi.Router) {
				r.Use(middleware.CacheControl(300))

				r.Get("/carousel", carouselHandler.ListImages)
				r.Get("/carousel-video", carouselHandler.ListVideos)
				r.Get("/marquee", carouselHandler.ListMarquees)
			})

			// Admin writes and log access.
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)

				r.Post("/carousel", carouselHandler.CreateImage)
				r.Post("/carousel-video", carouselHandler.CreateVideo)
				r.Post("/marquee", carouselHandler.CreateMarquee)
				r.Get("/logs", logHandler.List)
			})
		})
	})

	return r
}
