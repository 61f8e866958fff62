package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"dhaka/internal/moderation"
	"dhaka/internal/store"

	"github.com/go-chi/chi/v5"
)

// AdminStats is the dashboard summary: user totals, the moderation
// backlog per kind and the newest signups.
type AdminStats struct {
	TotalUsers    int                       `json:"total_users"`
	PendingCounts map[store.ContentKind]int `json:"pending_counts"`
	RecentUsers   []store.User              `json:"recent_users"`
}

// adminStatsHandler godoc
//
//	@Summary		Fetches the admin dashboard summary
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	AdminStats
//	@Failure		403	{object}	ErrorBadRequestResponse		"Forbidden"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/stats [get]
func (app *application) adminStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := app.store.Users.Count(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	counts, err := app.modqueue.PendingCounts(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	recent, err := app.store.Users.Recent(ctx, 5)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	stats := AdminStats{
		TotalUsers:    total,
		PendingCounts: counts,
		RecentUsers:   recent,
	}

	if err := app.jsonResponse(w, http.StatusOK, stats); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminListUsersHandler godoc
//
//	@Summary		Lists all users
//	@Tags			admin
//	@Produce		json
//	@Success		200	{array}		store.User
//	@Failure		403	{object}	ErrorBadRequestResponse		"Forbidden"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/users [get]
func (app *application) adminListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.store.Users.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, users); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SetRolePayload struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// adminSetRoleHandler godoc
//
//	@Summary		Changes a user's role
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		int				true	"User ID"
//	@Param			payload	body		SetRolePayload	true	"New role"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		403		{object}	ErrorBadRequestResponse		"Forbidden"
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{userID}/role [put]
func (app *application) adminSetRoleHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload SetRolePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	admin := getUserFromContext(r)
	if admin.ID == userID {
		app.badRequestResponse(w, r, fmt.Errorf("admins cannot change their own role"))
		return
	}

	if err := app.store.Users.SetRole(r.Context(), userID, payload.Role); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"role": payload.Role}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminDeleteUserHandler godoc
//
//	@Summary		Deletes a user account
//	@Tags			admin
//	@Param			userID	path	int	true	"User ID"
//	@Success		204
//	@Failure		400	{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		403	{object}	ErrorBadRequestResponse		"Forbidden"
//	@Failure		404	{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{userID} [delete]
func (app *application) adminDeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	admin := getUserFromContext(r)
	if admin.ID == userID {
		app.badRequestResponse(w, r, fmt.Errorf("admins cannot delete their own account"))
		return
	}

	if err := app.store.Users.Delete(r.Context(), userID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// adminListPendingHandler godoc
//
//	@Summary		Lists pending submissions of one kind
//	@Tags			admin
//	@Produce		json
//	@Param			kind	path		string	true	"Content kind"	Enums(event, place, story, thread)
//	@Success		200		{array}		store.PendingItem
//	@Failure		400		{object}	ErrorBadRequestResponse		"Unknown kind"
//	@Failure		403		{object}	ErrorBadRequestResponse		"Forbidden"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/pending/{kind} [get]
func (app *application) adminListPendingHandler(w http.ResponseWriter, r *http.Request) {
	kind, err := app.parseContentKind(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, err := app.modqueue.Pending(r.Context(), kind)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, items); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminApproveHandler godoc
//
//	@Summary		Approves a pending submission
//	@Description	Approving an already approved item is a no-op
//	@Tags			admin
//	@Produce		json
//	@Param			kind	path		string	true	"Content kind"	Enums(event, place, story, thread)
//	@Param			id		path		int		true	"Content ID"
//	@Success		200		{object}	map[string]bool
//	@Failure		400		{object}	ErrorBadRequestResponse		"Unknown kind"
//	@Failure		403		{object}	ErrorBadRequestResponse		"Forbidden"
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/approve/{kind}/{id} [put]
func (app *application) adminApproveHandler(w http.ResponseWriter, r *http.Request) {
	kind, err := app.parseContentKind(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.modqueue.Approve(r.Context(), kind, id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]bool{"approved": true}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminRejectHandler godoc
//
//	@Summary		Rejects a pending submission
//	@Description	Rejection deletes the content outright
//	@Tags			admin
//	@Param			kind	path	string	true	"Content kind"	Enums(event, place, story, thread)
//	@Param			id		path	int		true	"Content ID"
//	@Success		204
//	@Failure		400	{object}	ErrorBadRequestResponse		"Unknown kind"
//	@Failure		403	{object}	ErrorBadRequestResponse		"Forbidden"
//	@Failure		404	{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/reject/{kind}/{id} [delete]
func (app *application) adminRejectHandler(w http.ResponseWriter, r *http.Request) {
	kind, err := app.parseContentKind(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.modqueue.Reject(r.Context(), kind, id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) parseContentKind(r *http.Request) (store.ContentKind, error) {
	return moderation.ParseKind(chi.URLParam(r, "kind"))
}
