package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"dhaka/internal/reputation"
	"dhaka/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateReviewPayload struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=1000"`
}

// ReviewResponse pairs the review with the author's updated progress and
// any badges the review unlocked.
type ReviewResponse struct {
	Review   *store.Review  `json:"review"`
	Progress store.Progress `json:"progress"`
	Unlocked []store.Badge  `json:"unlocked"`
}

// createReviewHandler godoc
//
//	@Summary		Posts a review for a place
//	@Description	One review per user per place. Awards XP, recomputes the place rating and re-evaluates badges
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			placeID	path		int					true	"Place ID"
//	@Param			payload	body		CreateReviewPayload	true	"Review"
//	@Success		201		{object}	ReviewResponse
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		409		{object}	ErrorBadRequestResponse		"Already reviewed"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/places/{placeID}/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := strconv.ParseInt(chi.URLParam(r, "placeID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload CreateReviewPayload
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

	if _, err := app.store.Places.GetByID(ctx, placeID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	review := &store.Review{
		PlaceID: placeID,
		UserID:  user.ID,
		Rating:  payload.Rating,
		Comment: payload.Comment,
	}

	if err := app.store.Reviews.Create(ctx, review); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, fmt.Errorf("you have already reviewed this place"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.recomputePlaceRating(ctx, placeID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	progress, err := app.ledger.GrantXP(ctx, user.ID, reputation.ActionReviewWritten)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	unlocked, err := app.badges.Evaluate(ctx, user.ID, reputation.TriggerReviewWritten)
	if err != nil {
		app.logger.Errorw("badge evaluation failed", "user_id", user.ID, "error", err)
		unlocked = nil
	}

	resp := ReviewResponse{Review: review, Progress: progress, Unlocked: unlocked}

	if err := app.jsonResponse(w, http.StatusCreated, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listPlaceReviewsHandler godoc
//
//	@Summary		Lists reviews for a place
//	@Tags			reviews
//	@Produce		json
//	@Param			placeID	path		int	true	"Place ID"
//	@Success		200		{array}		store.Review
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/places/{placeID}/reviews [get]
func (app *application) listPlaceReviewsHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := strconv.ParseInt(chi.URLParam(r, "placeID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reviews, err := app.store.Reviews.ListByPlace(r.Context(), placeID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, reviews); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateReviewPayload struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=1000"`
}

// updateReviewHandler godoc
//
//	@Summary		Updates the user's own review
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			placeID		path		int					true	"Place ID"
//	@Param			reviewID	path		int					true	"Review ID"
//	@Param			payload		body		UpdateReviewPayload	true	"Fields to update"
//	@Success		200			{object}	store.Review
//	@Failure		403			{object}	ErrorBadRequestResponse		"Forbidden"
//	@Failure		404			{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/places/{placeID}/reviews/{reviewID} [put]
func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdateReviewPayload
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

	review, err := app.store.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if review.UserID != user.ID {
		app.forbiddenResponse(w, r)
		return
	}

	if payload.Rating != nil {
		review.Rating = *payload.Rating
	}
	if payload.Comment != nil {
		review.Comment = *payload.Comment
	}

	if err := app.store.Reviews.Update(ctx, review); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.recomputePlaceRating(ctx, review.PlaceID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteReviewHandler godoc
//
//	@Summary		Deletes a review
//	@Description	Allowed for the review author and for admins
//	@Tags			reviews
//	@Param			placeID		path	int	true	"Place ID"
//	@Param			reviewID	path	int	true	"Review ID"
//	@Success		204
//	@Failure		403	{object}	ErrorBadRequestResponse		"Forbidden"
//	@Failure		404	{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/places/{placeID}/reviews/{reviewID} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)
	ctx := r.Context()

	review, err := app.store.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if review.UserID != user.ID && !user.IsAdmin() {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.store.Reviews.Delete(ctx, reviewID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.recomputePlaceRating(ctx, review.PlaceID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// recomputePlaceRating rewrites the place rating from the current review
// set. Zero reviews means a zero rating, not a stale one.
func (app *application) recomputePlaceRating(ctx context.Context, placeID int64) error {
	_, avg, err := app.store.Reviews.Stats(ctx, placeID)
	if err != nil {
		return err
	}

	return app.store.Places.SetRating(ctx, placeID, avg)
}
