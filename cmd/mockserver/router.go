package main

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"yantratune/internal/app/albums"
	"yantratune/internal/app/artists"
	"yantratune/internal/app/catalog"
	"yantratune/internal/app/playlists"
	"yantratune/internal/app/preferences"
	"yantratune/internal/app/songs"
	"yantratune/internal/http/middleware"
	"yantratune/internal/httpapi"
	"yantratune/internal/memstore"
	"yantratune/internal/storage"
)

// newRouter serves uploaded files itself and hands every other path to the
// API handlers.
func newRouter(c *memstore.Catalog, prefs *memstore.Preferences, objects *memstore.Objects) *mux.Router {
	api := httpapi.New(httpapi.Services{
		Artists:     artists.New(c),
		Albums:      albums.New(c),
		Songs:       songs.New(c),
		Playlists:   playlists.New(c),
		Catalog:     catalog.New(c),
		Preferences: preferences.New(prefs, c),
		Uploads:     storage.New(objects),
	})

	router := mux.NewRouter()
	router.Use(middleware.RequestLogging(), middleware.Recovery(), middleware.CORS("*"))

	router.HandleFunc("/files/{bucket}/{name}", serveObject(objects)).Methods(http.MethodGet, http.MethodHead)
	router.PathPrefix("/").Handler(api.Routes())
	return router
}

func serveObject(objects *memstore.Objects) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		obj, ok := objects.Get(vars["bucket"], vars["name"])
		if !ok {
			http.NotFound(w, r)
			return
		}
		contentType := obj.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			w.Write(obj.Data)
		}
	}
}
