package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"yantratune/internal/app/albums"
	"yantratune/internal/app/artists"
	"yantratune/internal/app/catalog"
	"yantratune/internal/app/playlists"
	"yantratune/internal/app/preferences"
	"yantratune/internal/app/songs"
	"yantratune/internal/logging"
	"yantratune/internal/models"
	"yantratune/internal/storage"
	"yantratune/internal/store"
)

const (
	apiVersion = "1.0.0"

	defaultListLimit   = 100
	maxListLimit       = 1000
	defaultSearchLimit = 50
	maxSearchLimit     = 100

	// featuredSongs caps the recent and popular song shelves.
	featuredSongs     = 5
	featuredPlaylists = 3

	maxMultipartMemory = 32 << 20
)

const msgInternal = "Internal server error"

// Uploader stores media files in object storage.
type Uploader interface {
	UploadAudio(ctx context.Context, f storage.File) (string, error)
	UploadImage(ctx context.Context, f storage.File) (string, error)
	UploadMultipleImages(ctx context.Context, files []storage.File) []models.UploadResponse
}

// Services bundles the application services the HTTP handlers depend on.
type Services struct {
	Artists     artists.Service
	Albums      albums.Service
	Songs       songs.Service
	Playlists   playlists.Service
	Catalog     catalog.Service
	Preferences preferences.Service
	Uploads     Uploader
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	artists     artists.Service
	albums      albums.Service
	songs       songs.Service
	playlists   playlists.Service
	catalog     catalog.Service
	preferences preferences.Service
	uploads     Uploader
}

// New configures a Server over the given services.
func New(svc Services) *Server {
	return &Server{
		artists:     svc.Artists,
		albums:      svc.Albums,
		songs:       svc.Songs,
		playlists:   svc.Playlists,
		catalog:     svc.Catalog,
		preferences: svc.Preferences,
		uploads:     svc.Uploads,
	}
}

// Routes exposes the catalog API on a method-aware ServeMux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

// Register attaches every route to mux. Callers that front the API with their
// own router mount mux under it.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /api/{$}", s.handleRoot)

	collection(mux, "GET /api/artists", s.handleListArtists)
	collection(mux, "POST /api/artists", s.handleCreateArtist)
	mux.HandleFunc("GET /api/artists/{id}", s.handleGetArtist)
	mux.HandleFunc("PUT /api/artists/{id}", s.handleUpdateArtist)
	mux.HandleFunc("DELETE /api/artists/{id}", s.handleDeleteArtist)

	collection(mux, "GET /api/albums", s.handleListAlbums)
	collection(mux, "POST /api/albums", s.handleCreateAlbum)
	mux.HandleFunc("GET /api/albums/{id}", s.handleGetAlbum)
	mux.HandleFunc("PUT /api/albums/{id}", s.handleUpdateAlbum)
	mux.HandleFunc("DELETE /api/albums/{id}", s.handleDeleteAlbum)

	collection(mux, "GET /api/songs", s.handleListSongs)
	collection(mux, "POST /api/songs", s.handleCreateSong)
	mux.HandleFunc("GET /api/songs/search", s.handleSearch)
	mux.HandleFunc("GET /api/songs/{id}", s.handleGetSong)
	mux.HandleFunc("PUT /api/songs/{id}", s.handleUpdateSong)
	mux.HandleFunc("DELETE /api/songs/{id}", s.handleDeleteSong)

	collection(mux, "GET /api/playlists", s.handleListPlaylists)
	collection(mux, "POST /api/playlists", s.handleCreatePlaylist)
	mux.HandleFunc("GET /api/playlists/{id}", s.handleGetPlaylist)
	mux.HandleFunc("PUT /api/playlists/{id}", s.handleUpdatePlaylist)
	mux.HandleFunc("DELETE /api/playlists/{id}", s.handleDeletePlaylist)
	mux.HandleFunc("POST /api/playlists/{id}/songs", s.handleAddPlaylistSong)
	mux.HandleFunc("DELETE /api/playlists/{id}/songs/{song_id}", s.handleRemovePlaylistSong)

	mux.HandleFunc("POST /api/uploads/audio", s.handleUploadAudio)
	mux.HandleFunc("POST /api/uploads/image", s.handleUploadImage)
	mux.HandleFunc("POST /api/uploads/multiple-images", s.handleUploadMultipleImages)

	mux.HandleFunc("GET /api/admin/stats", s.handleAdminStats)
	mux.HandleFunc("GET /api/admin/logs", s.handleAdminLogs)

	mux.HandleFunc("GET /api/users/{id}/preferences", s.handleUserPreferences)
	mux.HandleFunc("POST /api/users/{id}/like-song/{song_id}", s.handleToggleLike)
	mux.HandleFunc("POST /api/users/{id}/follow-artist/{artist_id}", s.handleToggleFollow)
	mux.HandleFunc("POST /api/users/{id}/save-album/{album_id}", s.handleToggleSave)
	mux.HandleFunc("GET /api/users/{id}/liked-songs", s.handleLikedSongs)
	mux.HandleFunc("GET /api/users/{id}/followed-artists", s.handleFollowedArtists)
	mux.HandleFunc("GET /api/users/{id}/saved-albums", s.handleSavedAlbums)
}

// collection registers pattern with and without a trailing slash.
func collection(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, h)
	mux.HandleFunc(pattern+"/{$}", h)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "YantraTune API is running!",
		"version": apiVersion,
	})
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// internalError logs err against the request and answers with a generic 500.
func internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logging.WithContext(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg(msg)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}
	return true
}

// intParam reads an optional integer query parameter bounded to [min, max].
// A max of zero leaves the upper end open.
func intParam(r *http.Request, name string, def, min, max int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || (max > 0 && v > max) {
		return 0, false
	}
	return v, true
}

// listOptions parses limit and offset, writing a 400 on failure.
func listOptions(w http.ResponseWriter, r *http.Request) (store.ListOptions, bool) {
	limit, ok := intParam(r, "limit", defaultListLimit, 1, maxListLimit)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and 1000")
		return store.ListOptions{}, false
	}
	offset, ok := intParam(r, "offset", 0, 0, 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return store.ListOptions{}, false
	}
	return store.ListOptions{Limit: limit, Offset: offset}, true
}

func boolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

func truncate[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
