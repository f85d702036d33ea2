package main

import (
	"net/http"
	"strings"

	"yantratune/internal/app/albums"
	"yantratune/internal/app/artists"
	"yantratune/internal/app/catalog"
	"yantratune/internal/app/playlists"
	prefsvc "yantratune/internal/app/preferences"
	"yantratune/internal/app/songs"
	"yantratune/internal/config"
	"yantratune/internal/http/middleware"
	"yantratune/internal/httpapi"
	"yantratune/internal/preferences"
	"yantratune/internal/storage"
	"yantratune/internal/store"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store, prefs *preferences.Repository) http.Handler {
	objects := storage.NewRESTClient(cfg.Storage.URL, cfg.Storage.ServiceRoleKey, cfg.Storage.Timeout)

	api := httpapi.New(httpapi.Services{
		Artists:     artists.New(dataStore),
		Albums:      albums.New(dataStore),
		Songs:       songs.New(dataStore),
		Playlists:   playlists.New(dataStore),
		Catalog:     catalog.New(dataStore),
		Preferences: prefsvc.New(prefs, dataStore),
		Uploads:     storage.New(objects),
	})

	uploads := middleware.NewRateLimiter(cfg.UploadRateLimit, cfg.UploadRateBurst)
	return middleware.Chain(api.Routes(),
		middleware.RequestLogging(),
		middleware.Recovery(),
		middleware.CORS(strings.Join(cfg.CORS.AllowedOrigins, ",")),
		uploads.Limit("/api/uploads/"),
	)
}
