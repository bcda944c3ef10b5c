package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/garage/internal/db"
	"github.com/ukydev/garage/internal/middleware"
	"github.com/ukydev/garage/internal/models"
)

// RouterConfig carries everything the API router serves.
type RouterConfig struct {
	Logger        *log.Logger
	CORSOrigins   []string
	AuthRateLimit int
	AuthWindow    time.Duration

	Tokens   middleware.TokenValidator
	Auth     Authenticator
	Users    db.UserCollection
	Store    Pinger
	Cars     CarService
	Services CatalogService
	Records  RecordService
	Payments PaymentService
	Reports  ReportService
}

// NewRouter builds the HTTP API.
func NewRouter(cfg RouterConfig) http.Handler {
	authMW := middleware.NewAuthMiddleware(cfg.Tokens)
	limiter := middleware.NewRateLimitMiddleware()

	cars := NewCarHandler(cfg.Cars)
	services := NewServiceHandler(cfg.Services)
	records := NewServiceRecordHandler(cfg.Records)
	payments := NewPaymentHandler(cfg.Payments)
	reports := NewReportHandler(cfg.Reports)
	users := NewAuthHandler(cfg.Auth, cfg.Users)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", Health(cfg.Store))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(limiter.RateLimit(cfg.AuthRateLimit, cfg.AuthWindow))
			r.Post("/register", users.Register)
			r.Post("/login", users.Login)
			r.Group(func(r chi.Router) {
				r.Use(authMW.Authenticate)
				r.Get("/profile", users.GetProfile)
				r.Put("/profile", users.UpdateProfile)
				r.Post("/password", users.ChangePassword)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)

			r.Route("/cars", func(r chi.Router) {
				manage := authMW.RequirePermission(models.PermManageCars)
				r.Get("/", cars.List)
				r.Get("/{id}", cars.Get)
				r.With(manage).Post("/", cars.Create)
				r.With(manage).Put("/{id}", cars.Update)
				r.With(manage).Delete("/{id}", cars.Delete)
			})

			r.Route("/services", func(r chi.Router) {
				manage := authMW.RequirePermission(models.PermManageServices)
				r.Get("/", services.List)
				r.Get("/{id}", services.Get)
				r.With(manage).Post("/", services.Create)
				r.With(manage).Put("/{id}", services.Update)
				r.With(manage).Delete("/{id}", services.Delete)
			})

			r.Route("/service-records", func(r chi.Router) {
				manage := authMW.RequirePermission(models.PermManageRecords)
				r.Get("/", records.List)
				r.Get("/car/{carId}", records.ListByCar)
				r.Get("/{id}", records.Get)
				r.With(manage).Post("/", records.Create)
				r.With(manage).Put("/{id}", records.Update)
				r.With(manage).Delete("/{id}", records.Delete)
			})

			r.Route("/payments", func(r chi.Router) {
				manage := authMW.RequirePermission(models.PermManagePayments)
				r.Get("/", payments.List)
				r.Get("/service-record/{id}", payments.ListByRecord)
				r.Get("/{id}", payments.Get)
				r.With(manage).Post("/", payments.Create)
				r.With(manage).Put("/{id}", payments.Update)
				r.With(manage).Delete("/{id}", payments.Delete)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(authMW.RequireRole(models.RoleAdmin))
				r.Get("/revenue", reports.Revenue)
				r.Get("/performance", reports.Performance)
				r.Get("/inventory", reports.Inventory)
				r.Get("/customer-history", reports.CustomerHistory)
			})

			r.Get("/dashboard", reports.Dashboard)
		})
	})

	return r
}
