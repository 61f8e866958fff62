package main

import (
	"errors"
	"net/http"
	"strconv"

	"dhaka/internal/moderation"
	"dhaka/internal/reputation"
	"dhaka/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreatePlacePayload struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Category    string  `json:"category" validate:"required,oneof=food historical cultural nature shopping religious"`
	Description string  `json:"description" validate:"required"`
	Lat         float64 `json:"lat" validate:"required"`
	Lng         float64 `json:"lng" validate:"required"`
	Address     string  `json:"address" validate:"required,max=255"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

// createPlaceHandler godoc
//
//	@Summary		Submits a place
//	@Description	Regular submissions enter the moderation queue; admin submissions go live immediately
//	@Tags			places
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreatePlacePayload	true	"Place details"
//	@Success		201		{object}	store.Place
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/places [post]
func (app *application) createPlaceHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreatePlacePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	place := &store.Place{
		Name:        payload.Name,
		Category:    payload.Category,
		Description: payload.Description,
		Lat:         payload.Lat,
		Lng:         payload.Lng,
		Address:     payload.Address,
		ImageURL:    payload.ImageURL,
		CreatedBy:   user.ID,
		IsApproved:  moderation.SubmissionApproved(user.Role),
	}

	if err := app.store.Places.Create(r.Context(), place); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, place); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listPlacesHandler godoc
//
//	@Summary		Lists approved places
//	@Tags			places
//	@Produce		json
//	@Param			category	query		string	false	"Filter by category"
//	@Success		200			{array}		store.Place
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/places [get]
func (app *application) listPlacesHandler(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	places, err := app.store.Places.ListApproved(r.Context(), category)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, places); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getPlaceHandler godoc
//
//	@Summary		Fetches a place by id
//	@Tags			places
//	@Produce		json
//	@Param			placeID	path		int	true	"Place ID"
//	@Success		200		{object}	store.Place
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/places/{placeID} [get]
func (app *application) getPlaceHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := strconv.ParseInt(chi.URLParam(r, "placeID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	place, err := app.store.Places.GetByID(r.Context(), placeID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, place); err != nil {
		app.internalServerError(w, r, err)
	}
}

// VisitResponse pairs the visit with any badges it unlocked.
type VisitResponse struct {
	Visited  bool          `json:"visited"`
	Unlocked []store.Badge `json:"unlocked"`
}

// recordVisitHandler godoc
//
//	@Summary		Records a place visit
//	@Description	Logs the visit, bumps the place visit counter and re-evaluates visit-driven badges
//	@Tags			places
//	@Produce		json
//	@Param			placeID	path		int	true	"Place ID"
//	@Success		200		{object}	VisitResponse
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/places/{placeID}/visit [post]
func (app *application) recordVisitHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := strconv.ParseInt(chi.URLParam(r, "placeID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)
	ctx := r.Context()

	if _, err := app.store.Places.GetByID(ctx, placeID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.store.Places.RecordVisit(ctx, placeID, user.ID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	unlocked, err := app.badges.Evaluate(ctx, user.ID, reputation.TriggerPlaceVisited)
	if err != nil {
		app.logger.Errorw("badge evaluation failed", "user_id", user.ID, "error", err)
		unlocked = nil
	}

	resp := VisitResponse{Visited: true, Unlocked: unlocked}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// savePlaceHandler godoc
//
//	@Summary		Toggles a place on the user's saved list
//	@Tags			places
//	@Produce		json
//	@Param			placeID	path		int	true	"Place ID"
//	@Success		200		{object}	map[string]bool
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/places/{placeID}/save [put]
func (app *application) savePlaceHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := strconv.ParseInt(chi.URLParam(r, "placeID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	saved, err := app.store.Places.SaveForUser(r.Context(), placeID, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]bool{"saved": saved}); err != nil {
		app.internalServerError(w, r, err)
	}
}
