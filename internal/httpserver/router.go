package httpserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// buildRouter wires routes for the storefront API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.Use(sessionMiddleware(deps.JWTSecret), guardMiddleware(deps.APIGuard, deps.CartRepo))

	api.GET("/products", listProducts(deps, logger))
	api.GET("/products/:id", getProduct(deps, logger))
	api.GET("/regions", listRegions)

	api.GET("/cart", getCart(deps))
	api.POST("/cart/items", addCartItem(deps, logger))
	api.PATCH("/cart/items/:id", setCartItemQuantity(deps, logger))
	api.DELETE("/cart/items/:id", removeCartItem(deps, logger))
	api.DELETE("/cart", clearCart(deps, logger))

	api.GET("/favorites", listFavorites(deps))
	api.POST("/favorites/:id/toggle", toggleFavorite(deps, logger))

	api.GET("/navigation/guard", navigationGuard(deps))
	api.GET("/account/overview", accountOverview(deps, logger))

	api.GET("/checkout", checkoutSession(deps))
	api.POST("/checkout/review", submitReview(deps, logger))
	api.POST("/checkout/back", backToReview(deps, logger))
	api.POST("/checkout/pay", initiatePayment(deps, logger))
	api.GET("/checkout/return", resolveReturn(deps, logger))
	api.POST("/checkout/reset", resetCheckout(deps))

	return router
}
