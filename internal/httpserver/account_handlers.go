package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// accountOverview summarizes the visitor's session for the account
// dashboard. The route sits behind the protected-path guard; account data
// itself lives with the auth backend.
func accountOverview(deps Deps, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, err := loadCart(c, deps)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		favs, err := loadFavorites(c, deps)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"cartItemCount": store.TotalItemCount(),
			"favoriteCount": favs.Count(),
		})
	}
}
