package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"trove-storefront/internal/cart"
	"trove-storefront/internal/guard"
	cartrepo "trove-storefront/internal/repository/cart"
)

const (
	sessionCookieName = "trove_session"
	accessCookieName  = "trove_access"
	sessionCookieTTL  = 180 * 24 * time.Hour

	sessionCtxKey = "storefront.session"
	authCtxKey    = "storefront.authenticated"
)

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// sessionMiddleware pins a visitor session id cookie and resolves the
// authentication signal for downstream guards.
func sessionMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(sessionCookieName, sid, int(sessionCookieTTL.Seconds()), "/", "", false, true)
		}
		c.Set(sessionCtxKey, sid)
		c.Set(authCtxKey, hasValidAccessToken(c, jwtSecret))
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	v, _ := c.Get(sessionCtxKey)
	sid, _ := v.(string)
	return sid
}

func isAuthenticated(c *gin.Context) bool {
	v, _ := c.Get(authCtxKey)
	ok, _ := v.(bool)
	return ok
}

// hasValidAccessToken checks the access token issued by the auth backend.
// The storefront only consumes the signal; it never issues tokens.
func hasValidAccessToken(c *gin.Context, secret string) bool {
	if secret == "" {
		return false
	}
	raw := ""
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		raw = strings.TrimPrefix(h, "Bearer ")
	} else if v, err := c.Cookie(accessCookieName); err == nil {
		raw = v
	}
	if raw == "" {
		return false
	}
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	return err == nil && token.Valid
}

// guardMiddleware applies the navigation guards to this API's routes and
// turns a deny into a JSON redirect hint for the frontend router.
func guardMiddleware(cfg guard.Config, cartRepo cartrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		pathname := c.Request.URL.Path
		authed := isAuthenticated(c)

		if d := cfg.Protected(pathname, authed); !d.Allow {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"redirectTo": d.RedirectTo,
			})
			return
		}
		if d := cfg.AuthPages(pathname, authed); !d.Allow {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "already authenticated",
				"redirectTo": d.RedirectTo,
			})
			return
		}
		if d := cfg.CartRequired(pathname, cartNonEmpty(c, cartRepo)); !d.Allow {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":      "your cart is empty",
				"redirectTo": d.RedirectTo,
			})
			return
		}
		c.Next()
	}
}

// cartNonEmpty prefers the mirror cookie, which exists exactly so cart
// presence is readable without a storage round trip; the durable copy is
// consulted when the cookie is absent.
func cartNonEmpty(c *gin.Context, repo cartrepo.Repository) bool {
	if count, ok := cartCookiePresence(c); ok {
		return count > 0
	}
	store, err := cart.Load(c.Request.Context(), sessionID(c), repo)
	if err != nil {
		return false
	}
	return !store.IsEmpty()
}
