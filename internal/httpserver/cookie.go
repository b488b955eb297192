package httpserver

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"trove-storefront/internal/cart"
)

// The cart mirror cookie lets server-rendered pages see cart presence
// before hydration. It is best-effort and advisory; the durable store is
// authoritative on any conflict.
const (
	cartCookieName     = "trove_cart"
	cartCookieMaxBytes = 3800
	cartCookieTTL      = 3600 // seconds
)

type cartCookiePayload struct {
	Count int              `json:"count"`
	Total string           `json:"total"`
	Items []cartCookieItem `json:"items,omitempty"`
}

type cartCookieItem struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

// writeCartCookie mirrors the cart into the cookie. When the full item
// list would blow the size cap, only count and total are kept so presence
// information always survives.
func writeCartCookie(c *gin.Context, store *cart.Store) {
	payload := cartCookiePayload{
		Count: store.TotalItemCount(),
		Total: store.TotalPrice().String(),
	}
	for _, item := range store.Items() {
		payload.Items = append(payload.Items, cartCookieItem{ID: item.ID, Qty: item.Quantity})
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if len(encoded) > cartCookieMaxBytes {
		payload.Items = nil
		if encoded, err = json.Marshal(payload); err != nil {
			return
		}
	}
	c.SetCookie(cartCookieName, string(encoded), cartCookieTTL, "/", "", false, false)
}

func clearCartCookie(c *gin.Context) {
	c.SetCookie(cartCookieName, "", -1, "/", "", false, false)
}

// cartCookiePresence reads the mirrored item count. ok is false when the
// cookie is absent or unreadable.
func cartCookiePresence(c *gin.Context) (int, bool) {
	raw, err := c.Cookie(cartCookieName)
	if err != nil || raw == "" {
		return 0, false
	}
	var payload cartCookiePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return 0, false
	}
	return payload.Count, true
}
