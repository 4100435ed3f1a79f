package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type countryKey struct{}

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// Geo annotates the request context with the caller's country code when
// a lookup is configured. Lookup failures are ignored; geo data is an
// annotation, never a gate.
func Geo(lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if lookup != nil {
				if country, err := lookup(ClientIP(r)); err == nil && country != "" {
					ctx := context.WithValue(r.Context(), countryKey{}, strings.ToUpper(country))
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CountryFromContext returns the resolved country code, or "".
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(countryKey{}).(string); ok {
		return v
	}
	return ""
}

// ClientIP picks the best-guess client address: the first valid entry in
// X-Forwarded-For, then RemoteAddr.
func ClientIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return r.RemoteAddr
}
