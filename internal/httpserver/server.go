package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"trove-storefront/internal/catalog"
	cartrepo "trove-storefront/internal/repository/cart"
	favrepo "trove-storefront/internal/repository/favorites"
	"trove-storefront/internal/checkout"
	"trove-storefront/internal/guard"
)

// catalogClient is the slice of the catalog the storefront reads.
type catalogClient interface {
	Product(ctx context.Context, id string) (*catalog.Product, error)
	Products(ctx context.Context, filter catalog.ListFilter) ([]catalog.Product, error)
}

// Deps carries the wired collaborators for the HTTP surface.
type Deps struct {
	CartRepo      cartrepo.Repository
	FavoritesRepo favrepo.Repository
	Checkout      *checkout.Sessions
	Catalog       catalogClient
	// PageGuard decides page-level navigation (served to the frontend
	// router); APIGuard gates this API's own route groups.
	PageGuard   guard.Config
	APIGuard    guard.Config
	JWTSecret   string
	CORSOrigins []string
}

// APIGuardConfig guards this server's API routes.
func APIGuardConfig() guard.Config {
	return guard.Config{
		ProtectedPrefixes:  []string{"/api/account", "/api/orders"},
		AuthPrefixes:       []string{"/api/auth"},
		CartPrefixes:       []string{"/api/checkout"},
		CartExemptPrefixes: []string{"/api/checkout/return", "/api/checkout/reset"},
		LoginPath:          "/auth/login",
		DashboardPath:      "/dashboard",
		CartPath:           "/cart",
		RedirectParam:      "redirect",
	}
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	db         *pgxpool.Pool
}

// New builds a Server with the storefront routes.
func New(addr string, logger *zap.Logger, db *pgxpool.Pool, deps Deps) (*Server, error) {
	router := buildRouter(logger, db, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		db:         db,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
