package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"dhaka/internal/store"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UserProfile is the public projection of an account: the user row plus
// the badge board and the activity counters feeding it.
type UserProfile struct {
	User     *store.User            `json:"user"`
	Badges   []store.Badge          `json:"badges"`
	Activity store.ActivityCounters `json:"activity"`
}

// getCurrentUserHandler godoc
//
//	@Summary		Fetches the signed-in user's profile
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	UserProfile
//	@Failure		401	{object}	ErrorBadRequestResponse		"Unauthorized"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/users/me [get]
func (app *application) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	profile, err := app.buildProfile(r.Context(), user)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, profile); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getUserProfileHandler godoc
//
//	@Summary		Fetches a user profile by id
//	@Tags			users
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	UserProfile
//	@Failure		404		{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/users/{userID} [get]
func (app *application) getUserProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	user, err := app.store.Users.GetByID(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	// private profiles are only visible to their owner
	if !user.IsPublic {
		app.notFoundResponse(w, r, fmt.Errorf("profile %d is private", userID))
		return
	}

	profile, err := app.buildProfile(ctx, user)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, profile); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) buildProfile(ctx context.Context, user *store.User) (*UserProfile, error) {
	badges, err := app.store.Badges.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	counters, err := app.store.Users.Counters(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &UserProfile{User: user, Badges: badges, Activity: counters}, nil
}

type UpdateUserPayload struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	IsPublic *bool   `json:"is_public"`
}

// updateUserHandler godoc
//
//	@Summary		Updates the signed-in user's profile
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		UpdateUserPayload	true	"Fields to update"
//	@Success		200		{object}	store.User
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/users [put]
func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload UpdateUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	fields := map[string]interface{}{}
	if payload.Name != nil {
		fields["name"] = *payload.Name
	}
	if payload.Bio != nil {
		fields["bio"] = *payload.Bio
	}
	if payload.IsPublic != nil {
		fields["is_public"] = *payload.IsPublic
	}

	if len(fields) == 0 {
		app.badRequestResponse(w, r, fmt.Errorf("no updatable fields in payload"))
		return
	}

	ctx := r.Context()

	if err := app.store.Users.UpdateProfile(ctx, user.ID, fields); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	updated, err := app.store.Users.GetByID(ctx, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadProfilePictureHandler godoc
//
//	@Summary		Uploads a profile picture
//	@Description	Accepts a multipart image, stores it on Cloudinary and saves the URL
//	@Tags			users
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file	true	"Profile image"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/users/profile-picture [post]
func (app *application) uploadProfilePictureHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("image file is required: %w", err))
		return
	}
	defer file.Close()

	ctx := r.Context()

	publicID := fmt.Sprintf("avatars/%d-%s", user.ID, uuid.New().String())
	res, err := app.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: publicID,
		Folder:   "dhaka",
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.UpdateProfile(ctx, user.ID, map[string]interface{}{
		"profile_picture_url": res.SecureURL,
	}); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"url": res.SecureURL}); err != nil {
		app.internalServerError(w, r, err)
	}
}
