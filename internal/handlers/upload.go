package handlers

import (
	"mime/multipart"
	"path/filepath"

	"github.com/blogbliss/backend/internal/models"
	"github.com/blogbliss/backend/pkg/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// uploadImage stages a multipart image file to object storage and returns
// the stored reference. Uploads happen before any document write so a
// failure leaves no partial record behind.
func uploadImage(c echo.Context, store storage.ObjectStorage, fh *multipart.FileHeader, folder string) (*models.ImageRef, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := folder + "/" + uuid.NewString() + filepath.Ext(fh.Filename)
	ref, err := store.Upload(c.Request().Context(), objectName, contentType, src)
	if err != nil {
		return nil, err
	}
	return &models.ImageRef{URL: ref.URL, Filename: ref.Filename}, nil
}
