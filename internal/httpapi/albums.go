package httpapi

import (
	"errors"
	"net/http"

	"yantratune/internal/logging"
	"yantratune/internal/models"
	"yantratune/internal/store"
)

func (s *Server) handleListAlbums(w http.ResponseWriter, r *http.Request) {
	opts, ok := listOptions(w, r)
	if !ok {
		return
	}
	albums, err := s.albums.List(r.Context(), opts)
	if err != nil {
		internalError(w, r, err, "list albums failed")
		return
	}
	writeJSON(w, http.StatusOK, albums)
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	album, ok := s.lookupAlbum(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, album)
}

func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req models.AlbumCreate
	if !decodeJSON(w, r, &req) {
		return
	}
	album, err := s.albums.Create(r.Context(), req)
	if err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Msg("create album failed")
		writeError(w, http.StatusBadRequest, "Failed to create album")
		return
	}
	writeJSON(w, http.StatusOK, album)
}

func (s *Server) handleUpdateAlbum(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.lookupAlbum(w, r, id); !ok {
		return
	}
	var req models.AlbumUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	album, err := s.albums.Update(r.Context(), id, req)
	if err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Str("album_id", id).Msg("update album failed")
		writeError(w, http.StatusBadRequest, "Failed to update album")
		return
	}
	writeJSON(w, http.StatusOK, album)
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.lookupAlbum(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	if err := s.albums.Delete(r.Context(), existing); err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Str("album_id", existing.ID).Msg("delete album failed")
		writeError(w, http.StatusBadRequest, "Failed to delete album")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Album deleted successfully"})
}

func (s *Server) lookupAlbum(w http.ResponseWriter, r *http.Request, id string) (models.Album, bool) {
	album, err := s.albums.Get(r.Context(), id)
	switch {
	case err == nil:
		return album, true
	case errors.Is(err, store.ErrAlbumNotFound):
		writeError(w, http.StatusNotFound, "Album not found")
	default:
		internalError(w, r, err, "fetch album failed")
	}
	return models.Album{}, false
}
