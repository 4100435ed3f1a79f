package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/middleware"
	"server/internal/service"
)

type jwtRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// JWTIssue logs the caller in (upserting the account) and sets the
// long-lived session cookie. The token is also returned in the body for
// clients that prefer the Authorization header.
func (a *App) JWTIssue(w http.ResponseWriter, r *http.Request) {
	var req jwtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Email == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email required")
		return
	}
	user, err := a.Users.Login(r.Context(), service.LoginInput{Email: req.Email, Name: req.Name, Photo: req.Photo})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	token, err := middleware.SignToken(a.JWTSecret, user.Email, middleware.TokenTTL)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	http.SetCookie(w, a.sessionCookie(token, int(middleware.TokenTTL.Seconds())))
	a.json(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

// Logout clears the session cookie.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, a.sessionCookie("", -1))
	a.json(w, http.StatusOK, map[string]any{"success": true})
}

func (a *App) sessionCookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteStrictMode
	if a.CookieSecure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   a.CookieSecure,
		SameSite: sameSite,
	}
}
