package http

import (
	"QRTrack-Backend/internal/auth"
	"QRTrack-Backend/internal/repository"
	"QRTrack-Backend/internal/service"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Server wires all HTTP handlers and middleware together.
type Server struct {
	authHandlers     *auth.AuthHandlers
	qrCodesHandler   *QRCodesHandler
	analyticsHandler *AnalyticsHandler
	redirectHandler  *RedirectHandler
	healthHandler    *HealthHandler
	authMiddleware   *auth.Middleware
	log              *zap.Logger
}

func NewServer(
	storage repository.Storage,
	registry *service.CodeRegistry,
	recorder *service.ScanRecorder,
	aggregator *service.Aggregator,
	jwtService *auth.JWTService,
	passwordService *auth.PasswordService,
	log *zap.Logger,
	baseURL string,
) *Server {
	return &Server{
		authHandlers:     auth.NewAuthHandlers(storage, jwtService, passwordService, log),
		qrCodesHandler:   NewQRCodesHandler(registry, log, baseURL),
		analyticsHandler: NewAnalyticsHandler(storage, aggregator, log),
		redirectHandler:  NewRedirectHandler(recorder, log),
		healthHandler:    NewHealthHandler(storage, log),
		authMiddleware:   auth.NewMiddleware(jwtService, log),
		log:              log,
	}
}

// SetupRoutes builds the route table.
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Public redirect gateway
	mux.HandleFunc("GET /q/{shortId}", s.withObservability("/q/{shortId}", s.redirectHandler.HandleRedirect))

	// Probes and metrics (no auth)
	mux.HandleFunc("GET /health", s.healthHandler.Health)
	mux.HandleFunc("GET /ready", s.healthHandler.Ready)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Auth endpoints (no token required)
	mux.HandleFunc("POST /api/auth/register", s.public("/api/auth/register", s.authHandlers.Register))
	mux.HandleFunc("POST /api/auth/login", s.public("/api/auth/login", s.authHandlers.Login))

	// Owner-facing API (Bearer token required)
	mux.HandleFunc("POST /api/qrcodes", s.protected("/api/qrcodes", s.qrCodesHandler.Save))
	mux.HandleFunc("GET /api/qrcodes", s.protected("/api/qrcodes", s.qrCodesHandler.List))
	mux.HandleFunc("GET /api/qrcodes/{id}", s.protected("/api/qrcodes/{id}", s.qrCodesHandler.Get))
	mux.HandleFunc("DELETE /api/qrcodes/{id}", s.protected("/api/qrcodes/{id}", s.qrCodesHandler.Delete))
	mux.HandleFunc("GET /api/analytics/{id}", s.protected("/api/analytics/{id}", s.analyticsHandler.Get))

	// CORS preflight for the API surface
	mux.HandleFunc("OPTIONS /api/", s.authMiddleware.CORS(func(http.ResponseWriter, *http.Request) {}))

	return mux
}

func (s *Server) public(pattern string, handler http.HandlerFunc) http.HandlerFunc {
	return s.withObservability(pattern, s.authMiddleware.CORS(handler))
}

func (s *Server) protected(pattern string, handler http.HandlerFunc) http.HandlerFunc {
	return s.withObservability(pattern, s.authMiddleware.CORS(s.authMiddleware.RequireAuth(handler)))
}
