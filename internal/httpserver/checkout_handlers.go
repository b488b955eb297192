package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trove-storefront/internal/domain"
)

func checkoutSession(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		machine := deps.Checkout.Get(sessionID(c))
		c.JSON(http.StatusOK, machine.Snapshot())
	}
}

func submitReview(deps Deps, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var draft domain.CheckoutDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "malformed checkout form"})
			return
		}
		draft.NormalizeArea()
		machine := deps.Checkout.Get(sessionID(c))
		if err := machine.SubmitReview(draft); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, machine.Snapshot())
	}
}

func backToReview(deps Deps, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		machine := deps.Checkout.Get(sessionID(c))
		if err := machine.BackToReview(); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, machine.Snapshot())
	}
}

// initiatePayment submits the order and answers with the authorization
// redirect target. Navigation itself is the frontend's job; the machine
// stays in the payment step until the provider redirects back.
func initiatePayment(deps Deps, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, err := loadCart(c, deps)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		machine := deps.Checkout.Get(sessionID(c))
		auth, err := machine.InitiatePayment(c.Request.Context(), store)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"redirectUrl": auth.AuthorizationURL,
			"reference":   auth.Reference,
		})
	}
}

// resolveReturn handles the payment provider's redirect back, carrying the
// order number as a query parameter.
func resolveReturn(deps Deps, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := strings.TrimSpace(c.Query("orderNumber"))
		if orderNumber == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "orderNumber is required"})
			return
		}
		store, err := loadCart(c, deps)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		machine := deps.Checkout.Get(sessionID(c))
		if _, err := machine.ResolveReturn(c.Request.Context(), store, orderNumber); err != nil {
			respondError(c, logger, err)
			return
		}
		clearCartCookie(c)
		c.JSON(http.StatusOK, machine.Snapshot())
	}
}

func resetCheckout(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		deps.Checkout.Get(sid).Reset()
		deps.Checkout.Drop(sid)
		c.JSON(http.StatusOK, gin.H{"step": "review"})
	}
}
