package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"yantratune/internal/logging"
	"yantratune/internal/models"
	"yantratune/internal/store"
)

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	opts, ok := listOptions(w, r)
	if !ok {
		return
	}
	playlists, err := s.playlists.List(r.Context(), opts)
	if err != nil {
		internalError(w, r, err, "list playlists failed")
		return
	}
	if boolParam(r, "featured") {
		playlists = truncate(playlists, featuredPlaylists)
	}
	writeJSON(w, http.StatusOK, playlists)
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, ok := s.lookupPlaylist(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req models.PlaylistCreate
	if !decodeJSON(w, r, &req) {
		return
	}
	playlist, err := s.playlists.Create(r.Context(), req)
	if err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Msg("create playlist failed")
		writeError(w, http.StatusBadRequest, "Failed to create playlist")
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.lookupPlaylist(w, r, id); !ok {
		return
	}
	var req models.PlaylistUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	playlist, err := s.playlists.Update(r.Context(), id, req)
	if err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Str("playlist_id", id).Msg("update playlist failed")
		writeError(w, http.StatusBadRequest, "Failed to update playlist")
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.lookupPlaylist(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	if err := s.playlists.Delete(r.Context(), existing); err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Str("playlist_id", existing.ID).Msg("delete playlist failed")
		writeError(w, http.StatusBadRequest, "Failed to delete playlist")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Playlist deleted successfully"})
}

func (s *Server) handleAddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	playlistID := r.PathValue("id")
	songID := r.URL.Query().Get("song_id")
	if songID == "" {
		writeError(w, http.StatusBadRequest, "song_id is required")
		return
	}
	var orderIndex *int
	if raw := r.URL.Query().Get("order_index"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(w, http.StatusBadRequest, "order_index must be a non-negative integer")
			return
		}
		orderIndex = &v
	}

	if _, ok := s.lookupPlaylist(w, r, playlistID); !ok {
		return
	}
	if _, ok := s.lookupSong(w, r, songID); !ok {
		return
	}

	if _, err := s.playlists.AddSong(r.Context(), playlistID, songID, orderIndex); err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).
			Str("playlist_id", playlistID).
			Str("song_id", songID).
			Msg("add song to playlist failed")
		writeError(w, http.StatusBadRequest, "Failed to add song to playlist")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Song added to playlist successfully"})
}

func (s *Server) handleRemovePlaylistSong(w http.ResponseWriter, r *http.Request) {
	playlistID, songID := r.PathValue("id"), r.PathValue("song_id")
	if err := s.playlists.RemoveSong(r.Context(), playlistID, songID); err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).
			Str("playlist_id", playlistID).
			Str("song_id", songID).
			Msg("remove song from playlist failed")
		writeError(w, http.StatusBadRequest, "Failed to remove song from playlist")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Song removed from playlist successfully"})
}

func (s *Server) lookupPlaylist(w http.ResponseWriter, r *http.Request, id string) (models.Playlist, bool) {
	playlist, err := s.playlists.Get(r.Context(), id)
	switch {
	case err == nil:
		return playlist, true
	case errors.Is(err, store.ErrPlaylistNotFound):
		writeError(w, http.StatusNotFound, "Playlist not found")
	default:
		internalError(w, r, err, "fetch playlist failed")
	}
	return models.Playlist{}, false
}
