package httpapi

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"yantratune/internal/logging"
	"yantratune/internal/models"
	"yantratune/internal/storage"
)

func (s *Server) handleUploadAudio(w http.ResponseWriter, r *http.Request) {
	s.uploadSingle(w, r, s.uploads.UploadAudio, "Audio file uploaded successfully")
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	s.uploadSingle(w, r, s.uploads.UploadImage, "Cover image uploaded successfully")
}

func (s *Server) uploadSingle(w http.ResponseWriter, r *http.Request, upload func(context.Context, storage.File) (string, error), message string) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	f, err := readPart(headers[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid file upload")
		return
	}

	url, err := upload(r.Context(), f)
	if err != nil {
		if errors.Is(err, storage.ErrValidation) {
			writeError(w, http.StatusBadRequest, validationDetail(err))
			return
		}
		logging.WithContext(r.Context()).Error().Err(err).Str("filename", f.Filename).Msg("upload failed")
		writeError(w, http.StatusInternalServerError, "Upload failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.UploadResponse{Filename: f.Filename, URL: url, Message: message})
}

func (s *Server) handleUploadMultipleImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "files is required")
		return
	}

	files := make([]storage.File, 0, len(headers))
	for _, h := range headers {
		f, err := readPart(h)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid file upload")
			return
		}
		files = append(files, f)
	}
	writeJSON(w, http.StatusOK, s.uploads.UploadMultipleImages(r.Context(), files))
}

func readPart(h *multipart.FileHeader) (storage.File, error) {
	src, err := h.Open()
	if err != nil {
		return storage.File{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return storage.File{}, err
	}
	return storage.File{
		Filename:    h.Filename,
		ContentType: h.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// validationDetail strips the sentinel prefix so clients see only the reason.
func validationDetail(err error) string {
	return strings.TrimPrefix(err.Error(), storage.ErrValidation.Error()+": ")
}
