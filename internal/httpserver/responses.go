package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trove-storefront/internal/checkout"
	"trove-storefront/internal/domain"
)

// respondError maps the error taxonomy onto HTTP statuses. Validation
// errors stay field-scoped; gateway failures surface as retryable
// messages; anything unrecognized is a programming error and logs as such.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var verrs domain.ValidationErrors
	var gerr *domain.GatewayError
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verrs})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": "your cart is empty"})
	case errors.Is(err, domain.ErrMissingDraft):
		c.JSON(http.StatusConflict, gin.H{"error": "complete the review step first"})
	case errors.Is(err, domain.ErrCheckoutBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "a payment attempt is already in progress"})
	case errors.Is(err, checkout.ErrReviewRequired), errors.Is(err, checkout.ErrNotInPayment):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &gerr):
		c.JSON(http.StatusBadGateway, gin.H{"error": gerr.Message})
	default:
		logger.Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
