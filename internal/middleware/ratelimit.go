package middleware

import (
	"net/http"
	"sync"
	"time"
)

type window struct {
	count int
	until time.Time
}

// RateLimit caps requests per client IP within a fixed window.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	var mu sync.Mutex
	windows := make(map[string]*window)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			now := time.Now()
			mu.Lock()
			wnd, ok := windows[ip]
			if !ok || now.After(wnd.until) {
				wnd = &window{until: now.Add(per)}
				windows[ip] = wnd
			}
			if wnd.count >= limit {
				mu.Unlock()
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			wnd.count++
			mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}
