package server

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/finadvisor/finadvisor/internal/storage"
)

// multipart overhead allowed on top of the file limit
const multipartSlack = 1 << 20

type uploadResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	FileName   string `json:"fileName"`
	Size       int64  `json:"size"`
	Key        string `json:"key"`
	UploadDate string `json:"uploadDate"`
}

type uploadsResponse struct {
	Uploads []domain.StoredObject `json:"uploads"`
}

func (a *API) handleUpload(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFrom(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload+multipartSlack)
	if err := r.ParseMultipartForm(multipartSlack); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.fail(w, r, storage.ErrTooLarge)
			return
		}
		a.fail(w, r, storage.ErrMissingFile)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		a.fail(w, r, storage.ErrMissingFile)
		return
	}
	defer file.Close()

	if err := storage.Validate(header.Filename, header.Header.Get("Content-Type"), header.Size, a.maxUpload); err != nil {
		a.fail(w, r, err)
		return
	}

	obj, err := a.uploads.Put(r.Context(), owner, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.logger.Info().
		Str("owner", owner).
		Str("key", obj.Key).
		Int64("size", obj.Size).
		Msg("statement uploaded")

	respondJSON(w, http.StatusOK, uploadResponse{
		Success:    true,
		Message:    "Transaction data uploaded successfully",
		FileName:   header.Filename,
		Size:       obj.Size,
		Key:        obj.Key,
		UploadDate: obj.UploadedAt.Format(time.RFC3339),
	})
}

func (a *API) handleListUploads(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFrom(r.Context())
	objects, err := a.uploads.List(r.Context(), owner)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if objects == nil {
		objects = []domain.StoredObject{}
	}
	respondJSON(w, http.StatusOK, uploadsResponse{Uploads: objects})
}

func (a *API) handleDownload(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFrom(r.Context())
	obj, body, err := a.uploads.Open(r.Context(), owner, r.PathValue("key"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": obj.FileName}))
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		a.logger.Warn().Err(err).Str("key", obj.Key).Msg("statement download interrupted")
	}
}

var errUploadsDisabled = errors.New("uploads are not configured")

type unavailableStore struct{}

func (unavailableStore) Put(context.Context, string, string, string, io.Reader) (domain.StoredObject, error) {
	return domain.StoredObject{}, errUploadsDisabled
}

func (unavailableStore) List(context.Context, string) ([]domain.StoredObject, error) {
	return nil, nil
}

func (unavailableStore) Open(context.Context, string, string) (domain.StoredObject, io.ReadCloser, error) {
	return domain.StoredObject{}, nil, errUploadsDisabled
}
