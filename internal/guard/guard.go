// Package guard holds the storefront's navigation guards as pure decision
// functions over explicit inputs. The HTTP layer calls them on every
// navigation and acts on the result; the functions themselves hold no state.
package guard

import (
	"net/url"
	"strings"
)

// Decision is the outcome of a navigation check. Exactly one of Allow or a
// non-empty RedirectTo applies.
type Decision struct {
	Allow      bool   `json:"allow"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// Config lists the guarded path prefixes and the guard targets.
type Config struct {
	ProtectedPrefixes  []string
	AuthPrefixes       []string
	CartPrefixes       []string
	CartExemptPrefixes []string
	LoginPath          string
	DashboardPath      string
	CartPath           string
	// RedirectParam carries the originally requested path through the
	// login redirect.
	RedirectParam string
}

// DefaultConfig guards the storefront's page routes.
func DefaultConfig() Config {
	return Config{
		ProtectedPrefixes:  []string{"/dashboard", "/account", "/orders"},
		AuthPrefixes:       []string{"/auth"},
		CartPrefixes:       []string{"/checkout"},
		CartExemptPrefixes: []string{"/checkout/return"},
		LoginPath:          "/auth/login",
		DashboardPath:      "/dashboard",
		CartPath:           "/cart",
		RedirectParam:      "redirect",
	}
}

// Protected gates authenticated-only pages. Unauthenticated visitors are
// sent to the login page with the original path as a return parameter.
func (c Config) Protected(pathname string, isAuthenticated bool) Decision {
	path, _ := splitQuery(pathname)
	if !matchesPrefix(path, c.ProtectedPrefixes) || isAuthenticated {
		return Decision{Allow: true}
	}
	// The full pathname, query included, rides along so login can send the
	// visitor back to exactly where they were headed.
	return Decision{RedirectTo: c.LoginPath + "?" + c.RedirectParam + "=" + url.QueryEscape(pathname)}
}

// AuthPages sends an already-authenticated visitor away from login and
// register pages, honoring an explicit return parameter when present.
func (c Config) AuthPages(pathname string, isAuthenticated bool) Decision {
	path, query := splitQuery(pathname)
	if !matchesPrefix(path, c.AuthPrefixes) || !isAuthenticated {
		return Decision{Allow: true}
	}
	target := c.DashboardPath
	if v := query.Get(c.RedirectParam); v != "" && strings.HasPrefix(v, "/") {
		target = v
	}
	return Decision{RedirectTo: target}
}

// CartRequired gates checkout-family pages on a non-empty cart. The
// payment-provider return path is exempt since the cart is cleared once
// the order confirms.
func (c Config) CartRequired(pathname string, cartIsNonEmpty bool) Decision {
	path, _ := splitQuery(pathname)
	if !matchesPrefix(path, c.CartPrefixes) || cartIsNonEmpty {
		return Decision{Allow: true}
	}
	if matchesPrefix(path, c.CartExemptPrefixes) {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: c.CartPath}
}

func matchesPrefix(pathname string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if pathname == prefix || strings.HasPrefix(pathname, prefix+"/") {
			return true
		}
	}
	return false
}

func splitQuery(pathname string) (string, url.Values) {
	path, rawQuery, found := strings.Cut(pathname, "?")
	if !found {
		return path, url.Values{}
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return path, url.Values{}
	}
	return path, values
}
