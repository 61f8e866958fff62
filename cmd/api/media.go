package main

import (
	"fmt"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// uploadMediaHandler godoc
//
//	@Summary		Uploads an image
//	@Description	Stores a multipart image on Cloudinary and returns its URL, for use on places, stories and events
//	@Tags			media
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file	true	"Image file"
//	@Success		201		{object}	map[string]string
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/media [post]
func (app *application) uploadMediaHandler(w http.ResponseWriter, r *http.Request) {
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

	publicID := fmt.Sprintf("media/%d-%s", user.ID, uuid.New().String())
	res, err := app.cld.Upload.Upload(r.Context(), file, uploader.UploadParams{
		PublicID: publicID,
		Folder:   "dhaka",
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, map[string]string{"url": res.SecureURL}); err != nil {
		app.internalServerError(w, r, err)
	}
}
