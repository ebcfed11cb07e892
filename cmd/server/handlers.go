package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/contentware/tenantguard/pkg/pg"
	"github.com/contentware/tenantguard/pkg/session"
	"github.com/contentware/tenantguard/pkg/tenant"
	"github.com/contentware/tenantguard/pkg/tenantsql"
)

type application struct {
	db       *tenantsql.Querier
	sessions *session.Manager
	log      *slog.Logger
}

type tokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (app *application) handleHealth(checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				app.log.ErrorContext(r.Context(), "health check failed", slog.Any("error", err))
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}

	row, err := app.db.QueryRow(r.Context(), "auth.user_by_email",
		"SELECT id, password_hash, roles, permissions FROM app_user WHERE email = $1", req.Email)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	var (
		userID       string
		passwordHash []byte
		roles        []string
		permissions  []string
	)
	if err := row.Scan(&userID, &passwordHash, &roles, &permissions); err != nil {
		if pg.IsNotFoundError(err) {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		app.serverError(w, r, err)
		return
	}

	if bcrypt.CompareHashAndPassword(passwordHash, []byte(req.Password)) != nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	var tenantID string
	if id, ok := tenant.FromContext(r.Context()); ok {
		tenantID = id.String()
	}

	bearer, sess, err := app.sessions.Issue(r.Context(), userID, tenantID, roles, permissions,
		session.WithDeviceMeta(map[string]string{"user_agent": r.UserAgent()}))
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	refresh, err := app.sessions.CreateRefreshToken(r.Context(), sess)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  bearer,
		RefreshToken: refresh,
		ExpiresAt:    sess.ExpiresAt,
	})
}

func (app *application) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "refresh_token is required"})
		return
	}

	snapshot, err := app.sessions.RedeemRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		if session.IsNoSession(err) {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "refresh token is not valid"})
			return
		}
		app.serverError(w, r, err)
		return
	}

	bearer, sess, err := app.sessions.Issue(r.Context(),
		snapshot.UserID, snapshot.TenantID, snapshot.Roles, snapshot.Permissions,
		session.WithDeviceMeta(snapshot.DeviceMeta))
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{
		AccessToken: bearer,
		ExpiresAt:   sess.ExpiresAt,
	})
}

func (app *application) handleLogout(w http.ResponseWriter, r *http.Request) {
	bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := app.sessions.Revoke(r.Context(), bearer); err != nil {
		if session.IsNoSession(err) {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "no active session"})
			return
		}
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type article struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status int    `json:"status"`
}

// handleListArticles reads through the tenant-scoped querier; with a resolved
// tenant on the context the query executes with the tenant predicate applied.
func (app *application) handleListArticles(w http.ResponseWriter, r *http.Request) {
	rows, err := app.db.Query(r.Context(), "articles.list",
		"SELECT id, title, status FROM article ORDER BY created_at DESC LIMIT 100")
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	defer rows.Close()

	articles := []article{}
	for rows.Next() {
		var a article
		if err := rows.Scan(&a.ID, &a.Title, &a.Status); err != nil {
			app.serverError(w, r, err)
			return
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		app.serverError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, articles)
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.log.ErrorContext(r.Context(), "request failed", slog.Any("error", err))
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
