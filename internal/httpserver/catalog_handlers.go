package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trove-storefront/internal/catalog"
	"trove-storefront/internal/domain"
	"trove-storefront/internal/guard"
)

func listProducts(deps Deps, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := catalog.ListFilter{
			Category: c.Query("category"),
			Search:   c.Query("search"),
		}
		if v, err := strconv.Atoi(c.Query("page")); err == nil {
			filter.Page = v
		}
		if v, err := strconv.Atoi(c.Query("limit")); err == nil {
			filter.Limit = v
		}
		products, err := deps.Catalog.Products(c.Request.Context(), filter)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		if products == nil {
			products = []catalog.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProduct(deps Deps, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := deps.Catalog.Product(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// listRegions serves the state → local government area registry the
// checkout form is built from.
func listRegions(c *gin.Context) {
	type region struct {
		State string   `json:"state"`
		Areas []string `json:"areas"`
	}
	states := domain.States()
	regions := make([]region, 0, len(states))
	for _, s := range states {
		areas, _ := domain.AreasForState(s)
		regions = append(regions, region{State: s, Areas: areas})
	}
	c.JSON(http.StatusOK, gin.H{"regions": regions})
}

// navigationGuard evaluates the page-level guards for a frontend route so
// the router can act before rendering.
func navigationGuard(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Query("path")
		if path == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "path is required"})
			return
		}
		authed := isAuthenticated(c)
		decision := guard.Decision{Allow: true}
		if d := deps.PageGuard.Protected(path, authed); !d.Allow {
			decision = d
		} else if d := deps.PageGuard.AuthPages(path, authed); !d.Allow {
			decision = d
		} else if d := deps.PageGuard.CartRequired(path, cartNonEmpty(c, deps.CartRepo)); !d.Allow {
			decision = d
		}
		c.JSON(http.StatusOK, decision)
	}
}
