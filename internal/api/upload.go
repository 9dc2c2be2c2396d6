package api

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const maxUploadSize = 32 << 20

// UploadHandler stores incoming files under random names and hands back
// their public path.
type UploadHandler struct {
	dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Println(err)
	}

	return &UploadHandler{dir: dir}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")

		return
	}

	file, header, err := r.FormFile("file")

	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")

		return
	}

	defer file.Close()

	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(h.dir, name))

	if err != nil {
		log.Println(err)
		writeError(w, http.StatusInternalServerError, "failed to store file")

		return
	}

	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Println(err)
		writeError(w, http.StatusInternalServerError, "failed to store file")

		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": "/uploads/" + name})
}
