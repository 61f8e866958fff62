package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dhaka/internal/moderation"
	"dhaka/internal/reputation"
	"dhaka/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateEventPayload struct {
	Name        string    `json:"name" validate:"required,max=150"`
	Category    string    `json:"category" validate:"required,oneof=festival concert exhibition food workshop community"`
	Description string    `json:"description" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Venue       string    `json:"venue" validate:"required,max=255"`
	Lat         *float64  `json:"lat"`
	Lng         *float64  `json:"lng"`
	ImageURL    *string   `json:"image_url" validate:"omitempty,url"`
	TicketLink  *string   `json:"ticket_link" validate:"omitempty,url"`
}

// createEventHandler godoc
//
//	@Summary		Submits an event
//	@Description	Regular submissions enter the moderation queue; admin submissions go live immediately
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateEventPayload	true	"Event details"
//	@Success		201		{object}	store.Event
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/events [post]
func (app *application) createEventHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateEventPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	event := &store.Event{
		Name:        payload.Name,
		Category:    payload.Category,
		Description: payload.Description,
		Date:        payload.Date,
		Venue:       payload.Venue,
		Lat:         payload.Lat,
		Lng:         payload.Lng,
		ImageURL:    payload.ImageURL,
		TicketLink:  payload.TicketLink,
		CreatedBy:   user.ID,
		IsApproved:  moderation.SubmissionApproved(user.Role),
	}

	if err := app.store.Events.Create(r.Context(), event); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, event); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listEventsHandler godoc
//
//	@Summary		Lists upcoming approved events
//	@Tags			events
//	@Produce		json
//	@Param			category	query		string	false	"Filter by category"
//	@Success		200			{array}		store.Event
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/events [get]
func (app *application) listEventsHandler(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	events, err := app.store.Events.ListUpcoming(r.Context(), category)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, events); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getEventHandler godoc
//
//	@Summary		Fetches an event by id
//	@Tags			events
//	@Produce		json
//	@Param			eventID	path		int	true	"Event ID"
//	@Success		200		{object}	store.Event
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/events/{eventID} [get]
func (app *application) getEventHandler(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	event, err := app.store.Events.GetByID(r.Context(), eventID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, event); err != nil {
		app.internalServerError(w, r, err)
	}
}

// AttendResponse reports the toggle outcome with the user's progress,
// updated when joining grants XP.
type AttendResponse struct {
	Attending bool           `json:"attending"`
	Progress  store.Progress `json:"progress"`
}

// attendEventHandler godoc
//
//	@Summary		Toggles attendance on an event
//	@Description	Joining grants XP; leaving does not take it back
//	@Tags			events
//	@Produce		json
//	@Param			eventID	path		int	true	"Event ID"
//	@Success		200		{object}	AttendResponse
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/events/{eventID}/attend [post]
func (app *application) attendEventHandler(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)
	ctx := r.Context()

	if _, err := app.store.Events.GetByID(ctx, eventID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	attending, err := app.store.Events.IsAttending(ctx, eventID, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	progress, err := app.store.Users.Progress(ctx, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if attending {
		if err := app.store.Events.RemoveAttendee(ctx, eventID, user.ID); err != nil {
			app.internalServerError(w, r, err)
			return
		}

		resp := AttendResponse{Attending: false, Progress: progress}
		if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.store.Events.AddAttendee(ctx, eventID, user.ID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	progress, err = app.ledger.GrantXP(ctx, user.ID, reputation.ActionEventJoined)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp := AttendResponse{Attending: true, Progress: progress}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}
