package devserver

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/3ricLu/Symptomfy-sub001/pkg/health"
	"github.com/3ricLu/Symptomfy-sub001/pkg/middleware"
)

// NewRouter creates a chi router with the full stub API surface registered.
func NewRouter(
	cfg *Config,
	users *UserStore,
	appointments *AppointmentStore,
	jwtManager *JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Environment:    cfg.Environment,
	}))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("devserver"))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	authHandler := NewAuthHandler(users, jwtManager, logger)
	profileHandler := NewProfileHandler(users, logger)
	diagnosisHandler := NewDiagnosisHandler(logger)
	appointmentHandler := NewAppointmentHandler(appointments, logger)

	// Public auth endpoints.
	r.Post("/api/auth", authHandler.Login)
	r.Post("/api/user", authHandler.Register)
	r.Post("/api/user/refresh", authHandler.Refresh)

	// Bridge the JWT manager into the shared auth middleware.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokenValidator))

		r.Get("/api/patient", profileHandler.Patient)
		r.Get("/api/doctor", profileHandler.Doctor)
		r.Get("/api/admin", profileHandler.Admin)

		r.Post("/api/questions/generate", diagnosisHandler.Generate)

		r.Get("/api/appointment", appointmentHandler.Mine)
		r.Get("/api/appointment/free", appointmentHandler.Free)
		r.Post("/api/appointment", appointmentHandler.Book)
	})

	return r
}
