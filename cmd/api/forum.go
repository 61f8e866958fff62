package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"dhaka/internal/forum"
	"dhaka/internal/moderation"
	"dhaka/internal/reputation"
	"dhaka/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateThreadPayload struct {
	Title    string `json:"title" validate:"required,max=200"`
	Category string `json:"category" validate:"required,oneof=general food history transport events meetups"`
	Content  string `json:"content" validate:"required"`
}

// createThreadHandler godoc
//
//	@Summary		Opens a discussion thread
//	@Description	Regular submissions enter the moderation queue; admin threads go live immediately
//	@Tags			forum
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateThreadPayload	true	"Thread"
//	@Success		201		{object}	store.ForumThread
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/forum [post]
func (app *application) createThreadHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateThreadPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	thread := &store.ForumThread{
		Title:      payload.Title,
		Category:   payload.Category,
		Content:    payload.Content,
		AuthorID:   user.ID,
		IsApproved: moderation.SubmissionApproved(user.Role),
	}

	if err := app.store.Threads.Create(r.Context(), thread); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, thread); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listThreadsHandler godoc
//
//	@Summary		Lists approved threads
//	@Description	Pinned threads float to the top, the rest sort by latest activity
//	@Tags			forum
//	@Produce		json
//	@Param			category	query		string	false	"Filter by category"
//	@Success		200			{array}		store.ForumThread
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/forum [get]
func (app *application) listThreadsHandler(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	threads, err := app.threads.List(r.Context(), category)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, threads); err != nil {
		app.internalServerError(w, r, err)
	}
}

// ThreadDetail is a thread with its reply list.
type ThreadDetail struct {
	Thread  *store.ForumThread  `json:"thread"`
	Replies []store.ThreadReply `json:"replies"`
}

// getThreadHandler godoc
//
//	@Summary		Fetches a thread with its replies
//	@Description	Every fetch counts as a view
//	@Tags			forum
//	@Produce		json
//	@Param			threadID	path		int	true	"Thread ID"
//	@Success		200			{object}	ThreadDetail
//	@Failure		404			{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/forum/{threadID} [get]
func (app *application) getThreadHandler(w http.ResponseWriter, r *http.Request) {
	threadID, err := strconv.ParseInt(chi.URLParam(r, "threadID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	thread, err := app.threads.Get(ctx, threadID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	replies, err := app.threads.Replies(ctx, threadID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// best effort; a lost view count never fails the read
	if err := app.threads.IncrementView(ctx, threadID); err != nil {
		app.logger.Warnw("view increment failed", "thread_id", threadID, "error", err)
	} else {
		thread.Views++
	}

	detail := ThreadDetail{Thread: thread, Replies: replies}

	if err := app.jsonResponse(w, http.StatusOK, detail); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CreateReplyPayload struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// ReplyResponse pairs the reply with the author's updated progress.
type ReplyResponse struct {
	Reply    *store.ThreadReply `json:"reply"`
	Progress store.Progress     `json:"progress"`
}

// createReplyHandler godoc
//
//	@Summary		Replies to a thread
//	@Description	Locked threads reject replies. Posting bumps the thread's activity and awards XP
//	@Tags			forum
//	@Accept			json
//	@Produce		json
//	@Param			threadID	path		int					true	"Thread ID"
//	@Param			payload		body		CreateReplyPayload	true	"Reply"
//	@Success		201			{object}	ReplyResponse
//	@Failure		400			{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		404			{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		423			{object}	ErrorBadRequestResponse		"Thread locked"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/forum/{threadID}/replies [post]
func (app *application) createReplyHandler(w http.ResponseWriter, r *http.Request) {
	threadID, err := strconv.ParseInt(chi.URLParam(r, "threadID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload CreateReplyPayload
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

	reply, err := app.threads.PostReply(ctx, threadID, user.ID, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, forum.ErrThreadLocked):
			app.lockedResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	progress, err := app.ledger.GrantXP(ctx, user.ID, reputation.ActionReplyPosted)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp := ReplyResponse{Reply: reply, Progress: progress}

	if err := app.jsonResponse(w, http.StatusCreated, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) upvoteThreadHandler(w http.ResponseWriter, r *http.Request) {
	app.voteHandler(w, r, store.VoteKindThread, "threadID", store.VoteUp)
}

func (app *application) downvoteThreadHandler(w http.ResponseWriter, r *http.Request) {
	app.voteHandler(w, r, store.VoteKindThread, "threadID", store.VoteDown)
}

func (app *application) upvoteReplyHandler(w http.ResponseWriter, r *http.Request) {
	app.voteHandler(w, r, store.VoteKindReply, "replyID", store.VoteUp)
}

func (app *application) downvoteReplyHandler(w http.ResponseWriter, r *http.Request) {
	app.voteHandler(w, r, store.VoteKindReply, "replyID", store.VoteDown)
}

// voteHandler runs the shared toggle for thread and reply votes. Casting
// the same direction twice removes the vote; the opposite direction swaps
// it. Votes still land on locked threads.
func (app *application) voteHandler(w http.ResponseWriter, r *http.Request, kind store.VoteKind, param string, direction store.VoteDirection) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	tally, err := app.voteboard.Vote(r.Context(), kind, itemID, user.ID, direction)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, tally); err != nil {
		app.internalServerError(w, r, err)
	}
}

// pinThreadHandler godoc
//
//	@Summary		Toggles a thread's pinned flag
//	@Tags			forum
//	@Produce		json
//	@Param			threadID	path		int	true	"Thread ID"
//	@Success		200			{object}	store.ForumThread
//	@Failure		403			{object}	ErrorBadRequestResponse		"Forbidden"
//	@Failure		404			{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/forum/{threadID}/pin [put]
func (app *application) pinThreadHandler(w http.ResponseWriter, r *http.Request) {
	app.toggleThreadFlag(w, r, app.threads.TogglePin)
}

// lockThreadHandler godoc
//
//	@Summary		Toggles a thread's locked flag
//	@Tags			forum
//	@Produce		json
//	@Param			threadID	path		int	true	"Thread ID"
//	@Success		200			{object}	store.ForumThread
//	@Failure		403			{object}	ErrorBadRequestResponse		"Forbidden"
//	@Failure		404			{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/forum/{threadID}/lock [put]
func (app *application) lockThreadHandler(w http.ResponseWriter, r *http.Request) {
	app.toggleThreadFlag(w, r, app.threads.ToggleLock)
}

func (app *application) toggleThreadFlag(w http.ResponseWriter, r *http.Request, toggle func(ctx context.Context, threadID int64) (*store.ForumThread, error)) {
	threadID, err := strconv.ParseInt(chi.URLParam(r, "threadID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	thread, err := toggle(r.Context(), threadID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, thread); err != nil {
		app.internalServerError(w, r, err)
	}
}
