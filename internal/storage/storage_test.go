package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mp3Bytes = append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 32)...)
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
)

type putCall struct {
	bucket, name, contentType string
	size                      int
}

type stubObjects struct {
	puts      []putCall
	putErr    error
	deleteErr error
}

func (s *stubObjects) Put(_ context.Context, bucket, name, contentType string, data []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.puts = append(s.puts, putCall{bucket, name, contentType, len(data)})
	return nil
}

func (s *stubObjects) Delete(context.Context, string, string) error { return s.deleteErr }

func (s *stubObjects) PublicURL(bucket, name string) string {
	return "https://cdn.test/" + bucket + "/" + name
}

func newTestAdapter(objects ObjectStore) *Adapter {
	a := New(objects)
	a.newName = func(ext string) string { return "fixed." + ext }
	return a
}

func TestUploadAudio(t *testing.T) {
	objects := &stubObjects{}
	a := newTestAdapter(objects)

	url, err := a.UploadAudio(context.Background(), File{Filename: "track.flac", ContentType: "audio/flac", Data: []byte("fLaC-ish")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/music-files/fixed.flac", url)
	require.Len(t, objects.puts, 1)
	assert.Equal(t, putCall{"music-files", "fixed.flac", "audio/flac", 8}, objects.puts[0])
}

func TestUploadUsesDefaultExtension(t *testing.T) {
	objects := &stubObjects{}
	a := newTestAdapter(objects)

	_, err := a.UploadAudio(context.Background(), File{Filename: "track", ContentType: "audio/mpeg", Data: mp3Bytes})
	require.NoError(t, err)
	_, err = a.UploadImage(context.Background(), File{Filename: "cover", ContentType: "image/png", Data: pngBytes})
	require.NoError(t, err)

	require.Len(t, objects.puts, 2)
	assert.Equal(t, "fixed.mp3", objects.puts[0].name)
	assert.Equal(t, "fixed.jpg", objects.puts[1].name)
}

func TestPolicyValidate(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		file    File
		wantErr bool
	}{
		{name: "audio ok", policy: AudioPolicy, file: File{ContentType: "audio/mpeg", Data: mp3Bytes}},
		{name: "content type params stripped", policy: AudioPolicy, file: File{ContentType: "audio/mpeg; charset=binary", Data: mp3Bytes}},
		{name: "image declared as audio", policy: AudioPolicy, file: File{ContentType: "image/png", Data: pngBytes}, wantErr: true},
		{name: "png bytes declared as audio", policy: AudioPolicy, file: File{ContentType: "audio/mpeg", Data: pngBytes}, wantErr: true},
		{name: "type outside allow list", policy: AudioPolicy, file: File{ContentType: "audio/x-tracker", Data: []byte("x")}, wantErr: true},
		{name: "svg is not sniffed", policy: ImagePolicy, file: File{ContentType: "image/svg+xml", Data: []byte("<svg/>")}},
		{name: "image too large", policy: Policy{MIMEPrefix: "image/", MaxSize: 4, Kind: "an image file"}, file: File{ContentType: "image/png", Data: pngBytes}, wantErr: true},
		{name: "missing content type", policy: ImagePolicy, file: File{Data: pngBytes}, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.policy.Validate(tc.file)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUploadBackendFailure(t *testing.T) {
	a := newTestAdapter(&stubObjects{putErr: errors.New("bucket not found")})

	_, err := a.UploadImage(context.Background(), File{Filename: "a.png", ContentType: "image/png", Data: pngBytes})
	assert.ErrorIs(t, err, ErrUpload)
	assert.Contains(t, err.Error(), "bucket not found")
}

func TestUploadMultipleImagesContinuesPastFailures(t *testing.T) {
	objects := &stubObjects{}
	a := newTestAdapter(objects)

	results := a.UploadMultipleImages(context.Background(), []File{
		{Filename: "a.png", ContentType: "image/png", Data: pngBytes},
		{Filename: "b.mp3", ContentType: "audio/mpeg", Data: mp3Bytes},
		{Filename: "c.png", ContentType: "image/png", Data: pngBytes},
	})

	require.Len(t, results, 3)
	assert.Equal(t, "Cover image uploaded successfully", results[0].Message)
	assert.Empty(t, results[1].URL)
	assert.Contains(t, results[1].Message, "Upload failed: ")
	assert.Equal(t, "c.png", results[2].Filename)
	assert.NotEmpty(t, results[2].URL)
	assert.Len(t, objects.puts, 2)
}

func TestDeleteFileReportsFailure(t *testing.T) {
	assert.True(t, New(&stubObjects{}).DeleteFile(context.Background(), "cover-image", "a.png"))
	assert.False(t, New(&stubObjects{deleteErr: errors.New("boom")}).DeleteFile(context.Background(), "cover-image", "a.png"))
}

func TestRESTClientPut(t *testing.T) {
	var got *http.Request
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Key":"music-files/a.mp3"}`))
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL+"/", "service-key", time.Second)
	require.NoError(t, c.Put(context.Background(), "music-files", "a.mp3", "audio/mpeg", mp3Bytes))

	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/storage/v1/object/music-files/a.mp3", got.URL.Path)
	assert.Equal(t, "Bearer service-key", got.Header.Get("Authorization"))
	assert.Equal(t, "service-key", got.Header.Get("apikey"))
	assert.Equal(t, "true", got.Header.Get("x-upsert"))
	assert.Equal(t, "audio/mpeg", got.Header.Get("Content-Type"))
	assert.Equal(t, mp3Bytes, body)

	assert.Equal(t, srv.URL+"/storage/v1/object/public/music-files/a.mp3", c.PublicURL("music-files", "a.mp3"))
}

func TestRESTClientErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"statusCode":"404","error":"Bucket not found","message":"Bucket not found"}`))
	}))
	defer srv.Close()

	err := NewRESTClient(srv.URL, "k", time.Second).Put(context.Background(), "nope", "a.png", "image/png", pngBytes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Bucket not found")
}

func TestRESTClientDelete(t *testing.T) {
	var prefixes map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/storage/v1/object/cover-image", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&prefixes)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	require.NoError(t, NewRESTClient(srv.URL, "k", time.Second).Delete(context.Background(), "cover-image", "covers/a.png"))
	assert.Equal(t, map[string][]string{"prefixes": {"covers/a.png"}}, prefixes)
}
