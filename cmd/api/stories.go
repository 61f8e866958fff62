package main

import (
	"errors"
	"net/http"
	"strconv"

	"dhaka/internal/moderation"
	"dhaka/internal/params"
	"dhaka/internal/reputation"
	"dhaka/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateStoryPayload struct {
	Title     string   `json:"title" validate:"required,max=200"`
	Content   string   `json:"content" validate:"required"`
	PlaceName string   `json:"place_name" validate:"required,max=150"`
	Tags      []string `json:"tags" validate:"omitempty,max=10,dive,max=30"`
	ImageURL  *string  `json:"image_url" validate:"omitempty,url"`
}

// StoryResponse pairs the story with the author's updated progress and any
// badges publishing it unlocked.
type StoryResponse struct {
	Story    *store.Story   `json:"story"`
	Progress store.Progress `json:"progress"`
	Unlocked []store.Badge  `json:"unlocked"`
}

// createStoryHandler godoc
//
//	@Summary		Publishes a story
//	@Description	Regular submissions enter the moderation queue. Awards XP and re-evaluates story badges
//	@Tags			stories
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateStoryPayload	true	"Story"
//	@Success		201		{object}	StoryResponse
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/stories [post]
func (app *application) createStoryHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateStoryPayload
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

	story := &store.Story{
		Title:      payload.Title,
		Content:    payload.Content,
		AuthorID:   user.ID,
		PlaceName:  payload.PlaceName,
		Tags:       payload.Tags,
		ImageURL:   payload.ImageURL,
		IsApproved: moderation.SubmissionApproved(user.Role),
	}
	if story.Tags == nil {
		story.Tags = []string{}
	}

	if err := app.store.Stories.Create(ctx, story); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	progress, err := app.ledger.GrantXP(ctx, user.ID, reputation.ActionStoryPublished)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	unlocked, err := app.badges.Evaluate(ctx, user.ID, reputation.TriggerStoryPublished)
	if err != nil {
		app.logger.Errorw("badge evaluation failed", "user_id", user.ID, "error", err)
		unlocked = nil
	}

	resp := StoryResponse{Story: story, Progress: progress, Unlocked: unlocked}

	if err := app.jsonResponse(w, http.StatusCreated, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// StoryList is a page of stories with paging metadata.
type StoryList struct {
	Stories    []store.Story     `json:"stories"`
	Pagination params.Pagination `json:"pagination"`
}

// listStoriesHandler godoc
//
//	@Summary		Lists approved stories
//	@Tags			stories
//	@Produce		json
//	@Param			tag		query		string	false	"Filter by tag"
//	@Param			limit	query		int		false	"Page size (max 30)"
//	@Param			page	query		int		false	"Page number"
//	@Success		200		{object}	StoryList
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/stories [get]
func (app *application) listStoriesHandler(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	p := params.ParsePagination(r.URL.Query())

	ctx := r.Context()

	stories, err := app.store.Stories.ListApproved(ctx, tag, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	total, err := app.store.Stories.CountApproved(ctx, tag)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	if stories == nil {
		stories = []store.Story{}
	}

	list := StoryList{Stories: stories, Pagination: p}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getStoryHandler godoc
//
//	@Summary		Fetches a story by id
//	@Tags			stories
//	@Produce		json
//	@Param			storyID	path		int	true	"Story ID"
//	@Success		200		{object}	store.Story
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/stories/{storyID} [get]
func (app *application) getStoryHandler(w http.ResponseWriter, r *http.Request) {
	storyID, err := strconv.ParseInt(chi.URLParam(r, "storyID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	story, err := app.store.Stories.GetByID(r.Context(), storyID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, story); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteStoryHandler godoc
//
//	@Summary		Deletes a story
//	@Description	Allowed for the story author and for admins
//	@Tags			stories
//	@Param			storyID	path	int	true	"Story ID"
//	@Success		204
//	@Failure		403	{object}	ErrorBadRequestResponse		"Forbidden"
//	@Failure		404	{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/stories/{storyID} [delete]
func (app *application) deleteStoryHandler(w http.ResponseWriter, r *http.Request) {
	storyID, err := strconv.ParseInt(chi.URLParam(r, "storyID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)
	ctx := r.Context()

	story, err := app.store.Stories.GetByID(ctx, storyID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if story.AuthorID != user.ID && !user.IsAdmin() {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.store.Stories.Delete(ctx, storyID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
