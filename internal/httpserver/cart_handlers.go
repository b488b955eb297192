package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trove-storefront/internal/cart"
	"trove-storefront/internal/domain"
)

type cartResponse struct {
	Items          []domain.CartItem `json:"items"`
	TotalItemCount int               `json:"totalItemCount"`
	TotalPrice     string            `json:"totalPrice"`
}

func toCartResponse(store *cart.Store) cartResponse {
	items := store.Items()
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{
		Items:          items,
		TotalItemCount: store.TotalItemCount(),
		TotalPrice:     store.TotalPrice().String(),
	}
}

func loadCart(c *gin.Context, deps Deps) (*cart.Store, error) {
	return cart.Load(c.Request.Context(), sessionID(c), deps.CartRepo)
}

func getCart(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, err := loadCart(c, deps)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func addCartItem(deps Deps, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "productId is required"})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		product, err := deps.Catalog.Product(c.Request.Context(), req.ProductID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		store, err := loadCart(c, deps)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		item := domain.CartItem{
			ID:        product.ID,
			Name:      product.Title,
			UnitPrice: product.Price,
			Quantity:  req.Quantity,
		}
		if len(product.Images) > 0 {
			item.ImageRef = product.Images[0]
		}
		if err := store.AddItem(c.Request.Context(), item); err != nil {
			respondError(c, logger, err)
			return
		}
		writeCartCookie(c, store)
		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func setCartItemQuantity(deps Deps, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "quantity is required"})
			return
		}
		store, err := loadCart(c, deps)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		if err := store.SetQuantity(c.Request.Context(), c.Param("id"), req.Quantity); err != nil {
			respondError(c, logger, err)
			return
		}
		writeCartCookie(c, store)
		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

func removeCartItem(deps Deps, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, err := loadCart(c, deps)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		if err := store.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, logger, err)
			return
		}
		writeCartCookie(c, store)
		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

func clearCart(deps Deps, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, err := loadCart(c, deps)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		if err := store.Clear(c.Request.Context()); err != nil {
			respondError(c, logger, err)
			return
		}
		clearCartCookie(c)
		c.JSON(http.StatusOK, toCartResponse(store))
	}
}
