package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/spacerent/space-rental-backend/internal/service"
)

// maxUploadBytes caps how much of a multipart body is buffered in memory.
const maxUploadBytes = 32 << 20

// formFileUploads opens every file posted under the given form field and
// returns them as service uploads plus a cleanup func that closes the
// underlying files.
func formFileUploads(r *http.Request, field string) ([]service.ImageUpload, func(), error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, func() {}, err
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File[field]
	}

	uploads := make([]service.ImageUpload, 0, len(headers))
	files := make([]multipart.File, 0, len(headers))
	cleanup := func() {
		for _, f := range files {
			f.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		files = append(files, f)
		uploads = append(uploads, service.ImageUpload{
			Reader:      f,
			Size:        fh.Size,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}
	return uploads, cleanup, nil
}
