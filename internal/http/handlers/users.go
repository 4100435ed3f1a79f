package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/service"
)

type userDTO struct {
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Photo    string    `json:"photo"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joinedAt"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		Email:    u.Email,
		Name:     u.Name,
		Photo:    u.Photo,
		Role:     string(u.Role),
		Status:   string(u.Status),
		JoinedAt: u.JoinedAt,
	}
}

type upsertUserRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Photo  string `json:"photo"`
	Status string `json:"status"`
}

// UsersUpsert saves the account on login. An existing account is
// returned as is, unless the payload carries the Requested status.
func (a *App) UsersUpsert(w http.ResponseWriter, r *http.Request) {
	var req upsertUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Email == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email required")
		return
	}
	user, err := a.Users.Login(r.Context(), service.LoginInput{
		Email:  req.Email,
		Name:   req.Name,
		Photo:  req.Photo,
		Status: domain.UserStatus(req.Status),
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toUserDTO(user))
}

// UserGet returns one account. Self or admin.
func (a *App) UserGet(w http.ResponseWriter, r *http.Request) {
	user, err := a.Users.Get(r.Context(), a.principal(r), chi.URLParam(r, "email"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toUserDTO(user))
}

// UsersList returns every account. Admin only.
func (a *App) UsersList(w http.ResponseWriter, r *http.Request) {
	users, err := a.Users.List(r.Context(), a.principal(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]userDTO, 0, len(users))
	for i := range users {
		items = append(items, toUserDTO(&users[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type setRoleRequest struct {
	Role string `json:"role"`
}

// UserSetRole changes an account role. Admin only.
func (a *App) UserSetRole(w http.ResponseWriter, r *http.Request) {
	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	err := a.Users.SetRole(r.Context(), a.principal(r), chi.URLParam(r, "email"), domain.UserRole(req.Role))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true})
}

// UserRequestRole marks the caller's own account as requesting a role
// upgrade.
func (a *App) UserRequestRole(w http.ResponseWriter, r *http.Request) {
	if err := a.Users.RequestRoleUpgrade(r.Context(), a.principal(r)); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true})
}
