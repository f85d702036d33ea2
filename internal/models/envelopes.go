package models

// SearchResults groups cross-entity search matches. Every list is non-nil.
type SearchResults struct {
	Songs     []Song     `json:"songs"`
	Artists   []Artist   `json:"artists"`
	Albums    []Album    `json:"albums"`
	Playlists []Playlist `json:"playlists"`
}

// Stats carries catalog counts for the admin dashboard.
type Stats struct {
	TotalSongs     int `json:"total_songs"`
	TotalArtists   int `json:"total_artists"`
	TotalAlbums    int `json:"total_albums"`
	TotalPlaylists int `json:"total_playlists"`
}

// UploadResponse describes the outcome of storing one uploaded file.
type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Message  string `json:"message"`
}
