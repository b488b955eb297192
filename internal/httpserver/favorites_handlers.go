package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trove-storefront/internal/favorites"
)

func loadFavorites(c *gin.Context, deps Deps) (*favorites.Store, error) {
	return favorites.Load(c.Request.Context(), sessionID(c), deps.FavoritesRepo)
}

func listFavorites(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, err := loadFavorites(c, deps)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ids": store.IDs(), "count": store.Count()})
	}
}

func toggleFavorite(deps Deps, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, err := loadFavorites(c, deps)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		favorited, err := store.Toggle(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"favorited": favorited, "count": store.Count()})
	}
}
