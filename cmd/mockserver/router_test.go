package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yantratune/internal/memstore"
	"yantratune/internal/models"
	"yantratune/internal/seed"
	"yantratune/internal/store"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func newTestRouter(t *testing.T) (http.Handler, *memstore.Catalog) {
	t.Helper()
	c := memstore.NewCatalog()
	loaded, err := seed.Load(context.Background(), c)
	require.NoError(t, err)
	require.True(t, loaded)
	return newRouter(c, memstore.NewPreferences(), memstore.NewObjects("http://mock.local")), c
}

func TestRouterServesSeededCatalog(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/songs", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var songs []models.Song
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &songs))
	assert.Len(t, songs, 5)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	assert.JSONEq(t, `{"total_songs":5,"total_artists":3,"total_albums":2,"total_playlists":3}`, rec.Body.String())
}

func TestRouterUploadRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="cover.png"`)
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var uploaded models.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	require.True(t, strings.HasPrefix(uploaded.URL, "http://mock.local/files/cover-image/"), uploaded.URL)
	assert.True(t, strings.HasSuffix(uploaded.URL, ".png"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, strings.TrimPrefix(uploaded.URL, "http://mock.local"), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, pngHeader, rec.Body.Bytes())
}

func TestRouterMissingObject(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/cover-image/nope.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterPreferencesFlow(t *testing.T) {
	router, c := newTestRouter(t)

	songs, err := c.ListSongs(context.Background(), store.SongFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, songs)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/u1/like-song/"+songs[0].ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Song liked successfully","is_liked":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/u1/liked-songs", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var liked struct {
		Songs []models.Song `json:"songs"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &liked))
	assert.Equal(t, 1, liked.Total)
	require.Len(t, liked.Songs, 1)
	assert.Equal(t, songs[0].ID, liked.Songs[0].ID)
}
