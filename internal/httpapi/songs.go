package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"yantratune/internal/logging"
	"yantratune/internal/models"
	"yantratune/internal/store"
)

// handleListSongs serves the catalog listing. The recent and popular flags
// have no ranking data behind them yet and only shorten the page.
func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	opts, ok := listOptions(w, r)
	if !ok {
		return
	}
	filter := store.SongFilter{ListOptions: opts, Genre: r.URL.Query().Get("genre")}

	songs, err := s.songs.List(r.Context(), filter)
	if err != nil {
		internalError(w, r, err, "list songs failed")
		return
	}
	if boolParam(r, "recent") || boolParam(r, "popular") {
		songs = truncate(songs, featuredSongs)
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit, ok := intParam(r, "limit", defaultSearchLimit, 1, maxSearchLimit)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and 100")
		return
	}

	results, err := s.catalog.Search(r.Context(), q, limit)
	if err != nil {
		internalError(w, r, err, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, ok := s.lookupSong(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var req models.SongCreate
	if !decodeJSON(w, r, &req) {
		return
	}
	song, err := s.songs.Create(r.Context(), req)
	if err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Msg("create song failed")
		writeError(w, http.StatusBadRequest, "Failed to create song")
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.lookupSong(w, r, id); !ok {
		return
	}
	var req models.SongUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	song, err := s.songs.Update(r.Context(), id, req)
	if err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Str("song_id", id).Msg("update song failed")
		writeError(w, http.StatusBadRequest, "Failed to update song")
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.lookupSong(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	if err := s.songs.Delete(r.Context(), existing); err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Str("song_id", existing.ID).Msg("delete song failed")
		writeError(w, http.StatusBadRequest, "Failed to delete song")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Song deleted successfully"})
}

func (s *Server) lookupSong(w http.ResponseWriter, r *http.Request, id string) (models.Song, bool) {
	song, err := s.songs.Get(r.Context(), id)
	switch {
	case err == nil:
		return song, true
	case errors.Is(err, store.ErrSongNotFound):
		writeError(w, http.StatusNotFound, "Song not found")
	default:
		internalError(w, r, err, "fetch song failed")
	}
	return models.Song{}, false
}
