package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/soutoura/soutoura/pkg/logger"
	"github.com/soutoura/soutoura/pkg/reqid"
	"github.com/soutoura/soutoura/pkg/response"
	"github.com/soutoura/soutoura/pkg/storage"
)

// maxUploadBytes caps product image uploads at 10 MB.
const maxUploadBytes = 10 << 20

type UploadController struct{}

func NewUploadController() *UploadController {
	return &UploadController{}
}

// Store accepts a multipart "file" field, saves it under products/ on the
// configured disk, and returns the public URL for the catalogue.
func (c *UploadController) Store(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Fichier manquant ou trop volumineux")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		response.Error(w, http.StatusUnprocessableEntity, "Format d'image non supporté")
		return
	}

	path := "products/" + reqid.New() + ext
	if err := storage.PutStream(path, file); err != nil {
		logger.WithCtx(r.Context()).Error("upload failed", "path", path, "error", err)
		response.ServerError(w)
		return
	}

	response.Created(w, map[string]string{
		"path": path,
		"url":  storage.URL(path),
	})
}
