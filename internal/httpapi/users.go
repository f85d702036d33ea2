package httpapi

import (
	"context"
	"net/http"

	"yantratune/internal/app/preferences"
	"yantratune/internal/logging"
)

// User endpoints report backend failures verbatim in the detail field.
func userError(w http.ResponseWriter, r *http.Request, err error) {
	logging.WithContext(r.Context()).Error().Err(err).
		Str("user_id", r.PathValue("id")).
		Str("path", r.URL.Path).
		Msg("user preference request failed")
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) handleUserPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferences.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		userError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	liked, err := s.preferences.ToggleLike(r.Context(), r.PathValue("id"), r.PathValue("song_id"))
	if err != nil {
		userError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  toggleMessage("Song", liked, "liked", "unliked"),
		"is_liked": liked,
	})
}

func (s *Server) handleToggleFollow(w http.ResponseWriter, r *http.Request) {
	following, err := s.preferences.ToggleFollow(r.Context(), r.PathValue("id"), r.PathValue("artist_id"))
	if err != nil {
		userError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      toggleMessage("Artist", following, "followed", "unfollowed"),
		"is_following": following,
	})
}

func (s *Server) handleToggleSave(w http.ResponseWriter, r *http.Request) {
	saved, err := s.preferences.ToggleSave(r.Context(), r.PathValue("id"), r.PathValue("album_id"))
	if err != nil {
		userError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  toggleMessage("Album", saved, "saved", "unsaved"),
		"is_saved": saved,
	})
}

func toggleMessage(entity string, on bool, onVerb, offVerb string) string {
	if on {
		return entity + " " + onVerb + " successfully"
	}
	return entity + " " + offVerb + " successfully"
}

func (s *Server) handleLikedSongs(w http.ResponseWriter, r *http.Request) {
	userList(w, r, "songs", s.preferences.LikedSongs)
}

func (s *Server) handleFollowedArtists(w http.ResponseWriter, r *http.Request) {
	userList(w, r, "artists", s.preferences.FollowedArtists)
}

func (s *Server) handleSavedAlbums(w http.ResponseWriter, r *http.Request) {
	userList(w, r, "albums", s.preferences.SavedAlbums)
}

// userList serves one of the paged preference lists under key, along with
// the total number of ids the user holds.
func userList[T any](w http.ResponseWriter, r *http.Request, key string, list func(context.Context, string, int, int) ([]T, int, error)) {
	skip, ok := intParam(r, "skip", 0, 0, 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "skip must be a non-negative integer")
		return
	}
	limit, ok := intParam(r, "limit", preferences.DefaultPageSize, 1, 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	items, total, err := list(r.Context(), r.PathValue("id"), skip, limit)
	if err != nil {
		userError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		key:     items,
		"total": total,
	})
}
