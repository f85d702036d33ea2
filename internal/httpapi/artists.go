package httpapi

import (
	"errors"
	"net/http"

	"yantratune/internal/logging"
	"yantratune/internal/models"
	"yantratune/internal/store"
)

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	opts, ok := listOptions(w, r)
	if !ok {
		return
	}
	artists, err := s.artists.List(r.Context(), opts)
	if err != nil {
		internalError(w, r, err, "list artists failed")
		return
	}
	writeJSON(w, http.StatusOK, artists)
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	artist, ok := s.lookupArtist(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	var req models.ArtistCreate
	if !decodeJSON(w, r, &req) {
		return
	}
	artist, err := s.artists.Create(r.Context(), req)
	if err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Msg("create artist failed")
		writeError(w, http.StatusBadRequest, "Failed to create artist")
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.lookupArtist(w, r, id); !ok {
		return
	}
	var req models.ArtistUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	artist, err := s.artists.Update(r.Context(), id, req)
	if err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Str("artist_id", id).Msg("update artist failed")
		writeError(w, http.StatusBadRequest, "Failed to update artist")
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.lookupArtist(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	if err := s.artists.Delete(r.Context(), existing); err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Str("artist_id", existing.ID).Msg("delete artist failed")
		writeError(w, http.StatusBadRequest, "Failed to delete artist")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Artist deleted successfully"})
}

// lookupArtist fetches the artist named by id, answering 404 or 500 itself
// when it cannot.
func (s *Server) lookupArtist(w http.ResponseWriter, r *http.Request, id string) (models.Artist, bool) {
	artist, err := s.artists.Get(r.Context(), id)
	switch {
	case err == nil:
		return artist, true
	case errors.Is(err, store.ErrArtistNotFound):
		writeError(w, http.StatusNotFound, "Artist not found")
	default:
		internalError(w, r, err, "fetch artist failed")
	}
	return models.Artist{}, false
}
