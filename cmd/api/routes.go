package main

import (
	"errors"
	"net/http"
	"strconv"

	"dhaka/internal/reputation"
	"dhaka/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateRoutePayload struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Description string  `json:"description" validate:"required"`
	PlaceIDs    []int64 `json:"place_ids" validate:"required,min=2,dive,gt=0"`
	Duration    string  `json:"duration" validate:"required,max=50"`
	DistanceKm  float64 `json:"distance_km" validate:"required,gt=0"`
	Kind        string  `json:"kind" validate:"required,oneof=heritage food historical cultural custom"`
}

// createRouteHandler godoc
//
//	@Summary		Creates a heritage route
//	@Description	Admin only. Assigns the route a share code for public links
//	@Tags			routes
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateRoutePayload	true	"Route details"
//	@Success		201		{object}	store.HeritageRoute
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		403		{object}	ErrorBadRequestResponse		"Forbidden"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/routes [post]
func (app *application) createRouteHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateRoutePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)
	ctx := r.Context()

	route := &store.HeritageRoute{
		Name:        payload.Name,
		Description: payload.Description,
		PlaceIDs:    payload.PlaceIDs,
		Duration:    payload.Duration,
		DistanceKm:  payload.DistanceKm,
		Kind:        payload.Kind,
		CreatedBy:   user.ID,
	}

	if err := app.store.Routes.Create(ctx, route); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// the code depends on the row id, so it lands in a second write
	code, err := app.shareCode.Encode(route.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	route.ShareCode = code

	if err := app.store.Routes.SetShareCode(ctx, route.ID, code); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, route); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listRoutesHandler godoc
//
//	@Summary		Lists heritage routes
//	@Tags			routes
//	@Produce		json
//	@Success		200	{array}		store.HeritageRoute
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/routes [get]
func (app *application) listRoutesHandler(w http.ResponseWriter, r *http.Request) {
	routes, err := app.store.Routes.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, routes); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRouteHandler godoc
//
//	@Summary		Fetches a heritage route by id
//	@Tags			routes
//	@Produce		json
//	@Param			routeID	path		int	true	"Route ID"
//	@Success		200		{object}	store.HeritageRoute
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/routes/{routeID} [get]
func (app *application) getRouteHandler(w http.ResponseWriter, r *http.Request) {
	routeID, err := strconv.ParseInt(chi.URLParam(r, "routeID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	route, err := app.store.Routes.GetByID(r.Context(), routeID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, route); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getSharedRouteHandler godoc
//
//	@Summary		Resolves a shared route link
//	@Description	Looks a route up by its share code
//	@Tags			routes
//	@Produce		json
//	@Param			code	path		string	true	"Share code"
//	@Success		200		{object}	store.HeritageRoute
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/routes/shared/{code} [get]
func (app *application) getSharedRouteHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	routeID, err := app.shareCode.Decode(code)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	route, err := app.store.Routes.GetByID(r.Context(), routeID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, route); err != nil {
		app.internalServerError(w, r, err)
	}
}

// CompletionResponse reports a route completion. Completed is false when
// the user had already finished this route, in which case no XP moves.
type CompletionResponse struct {
	Completed bool           `json:"completed"`
	Progress  store.Progress `json:"progress"`
	Unlocked  []store.Badge  `json:"unlocked"`
}

// completeRouteHandler godoc
//
//	@Summary		Marks a route as completed
//	@Description	First completion grants XP and re-evaluates route badges; repeats are no-ops
//	@Tags			routes
//	@Produce		json
//	@Param			routeID	path		int	true	"Route ID"
//	@Success		200		{object}	CompletionResponse
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/routes/{routeID}/complete [post]
func (app *application) completeRouteHandler(w http.ResponseWriter, r *http.Request) {
	routeID, err := strconv.ParseInt(chi.URLParam(r, "routeID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)
	ctx := r.Context()

	if _, err := app.store.Routes.GetByID(ctx, routeID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	first, err := app.store.Routes.RecordCompletion(ctx, routeID, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if !first {
		progress, err := app.store.Users.Progress(ctx, user.ID)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}

		resp := CompletionResponse{Completed: false, Progress: progress}
		if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	progress, err := app.ledger.GrantXP(ctx, user.ID, reputation.ActionRouteCompleted)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	unlocked, err := app.badges.Evaluate(ctx, user.ID, reputation.TriggerRouteCompleted)
	if err != nil {
		app.logger.Errorw("badge evaluation failed", "user_id", user.ID, "error", err)
		unlocked = nil
	}

	resp := CompletionResponse{Completed: true, Progress: progress, Unlocked: unlocked}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// saveRouteHandler godoc
//
//	@Summary		Toggles a route on the user's saved list
//	@Tags			routes
//	@Produce		json
//	@Param			routeID	path		int	true	"Route ID"
//	@Success		200		{object}	map[string]bool
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/routes/{routeID}/save [put]
func (app *application) saveRouteHandler(w http.ResponseWriter, r *http.Request) {
	routeID, err := strconv.ParseInt(chi.URLParam(r, "routeID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	saved, err := app.store.Routes.SaveForUser(r.Context(), routeID, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]bool{"saved": saved}); err != nil {
		app.internalServerError(w, r, err)
	}
}
