// Package seed loads the demo catalog.
package seed

import (
	"context"
	"fmt"

	"yantratune/internal/models"
	"yantratune/internal/store"
)

// Writer is the subset of a catalog store needed to load demo data.
type Writer interface {
	CreateArtist(ctx context.Context, input models.ArtistCreate) (models.Artist, error)
	CreateAlbum(ctx context.Context, input models.AlbumCreate) (models.Album, error)
	CreateSong(ctx context.Context, input models.SongCreate) (models.Song, error)
	CreatePlaylist(ctx context.Context, input models.PlaylistCreate) (models.Playlist, error)
	AddSongToPlaylist(ctx context.Context, playlistID, songID string, orderIndex *int) (models.PlaylistSong, error)
	Stats(ctx context.Context) models.Stats
}

const (
	coverWarm   = "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=300&h=300&fit=crop"
	coverCool   = "https://images.unsplash.com/photo-1458560871784-56d23406c091?w=300&h=300&fit=crop"
	coverActive = "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=300&h=300&fit=crop"
)

type songSeed struct {
	title, artist, album, duration, genre, audio, cover string
}

var artistSeeds = []models.ArtistCreate{
	{
		Name:      "The Weeknd",
		Bio:       str("Canadian singer, songwriter, and record producer known for his musical versatility."),
		AvatarURL: str("https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=300&h=300&fit=crop"),
	},
	{
		Name:      "Ed Sheeran",
		Bio:       str("English singer-songwriter known for his acoustic folk and pop music."),
		AvatarURL: str("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=300&h=300&fit=crop"),
	},
	{
		Name:      "Queen",
		Bio:       str("Legendary British rock band formed in London in 1970."),
		AvatarURL: str(coverWarm),
	},
}

var songSeeds = []songSeed{
	{"Blinding Lights", "The Weeknd", "After Hours", "3:20", "Pop", "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3", coverWarm},
	{"Save Your Tears", "The Weeknd", "After Hours", "3:35", "Pop", "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-4.mp3", coverWarm},
	{"Shape of You", "Ed Sheeran", "÷ (Divide)", "3:53", "Pop", "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3", coverCool},
	{"Perfect", "Ed Sheeran", "÷ (Divide)", "4:23", "Pop", "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-5.mp3", coverCool},
	{"Bohemian Rhapsody", "Queen", "", "5:55", "Rock", "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-3.mp3", coverWarm},
}

var playlistSeeds = []struct {
	create models.PlaylistCreate
	songs  []string
}{
	{
		create: models.PlaylistCreate{Name: "Today's Top Hits", CoverURL: str(coverWarm), Description: str("The biggest hits right now")},
		songs:  []string{"Blinding Lights", "Shape of You", "Save Your Tears"},
	},
	{
		create: models.PlaylistCreate{Name: "Chill Vibes", CoverURL: str(coverCool), Description: str("Relax and unwind with these chill tracks")},
		songs:  []string{"Perfect"},
	},
	{
		create: models.PlaylistCreate{Name: "Workout Mix", CoverURL: str(coverActive), Description: str("High energy tracks for your workout")},
		songs:  []string{"Bohemian Rhapsody", "Blinding Lights"},
	},
}

// Load inserts the demo catalog when w holds no artists yet. It reports
// whether anything was written.
func Load(ctx context.Context, w Writer) (bool, error) {
	if w.Stats(ctx).TotalArtists > 0 {
		return false, nil
	}

	artists := make(map[string]string, len(artistSeeds))
	for _, in := range artistSeeds {
		a, err := w.CreateArtist(ctx, in)
		if err != nil {
			return false, fmt.Errorf("seed artist %s: %w", in.Name, err)
		}
		artists[a.Name] = a.ID
	}

	albumSeeds := []models.AlbumCreate{
		{Title: "After Hours", ArtistID: artists["The Weeknd"], CoverURL: str(coverWarm), ReleaseDate: str("2020-03-20")},
		{Title: "÷ (Divide)", ArtistID: artists["Ed Sheeran"], CoverURL: str(coverCool), ReleaseDate: str("2017-03-03")},
	}
	albums := make(map[string]string, len(albumSeeds))
	for _, in := range albumSeeds {
		a, err := w.CreateAlbum(ctx, in)
		if err != nil {
			return false, fmt.Errorf("seed album %s: %w", in.Title, err)
		}
		albums[a.Title] = a.ID
	}

	songs := make(map[string]string, len(songSeeds))
	for _, in := range songSeeds {
		create := models.SongCreate{
			Title:    in.title,
			ArtistID: artists[in.artist],
			Duration: str(in.duration),
			Genre:    str(in.genre),
			AudioURL: str(in.audio),
			CoverURL: str(in.cover),
		}
		if in.album != "" {
			create.AlbumID = str(albums[in.album])
		}
		s, err := w.CreateSong(ctx, create)
		if err != nil {
			return false, fmt.Errorf("seed song %s: %w", in.title, err)
		}
		songs[s.Title] = s.ID
	}

	for _, in := range playlistSeeds {
		p, err := w.CreatePlaylist(ctx, in.create)
		if err != nil {
			return false, fmt.Errorf("seed playlist %s: %w", in.create.Name, err)
		}
		for _, title := range in.songs {
			if _, err := w.AddSongToPlaylist(ctx, p.ID, songs[title], nil); err != nil {
				return false, fmt.Errorf("seed playlist %s song %s: %w", p.Name, title, err)
			}
		}
	}

	return true, nil
}

func str(v string) *string {
	return &v
}

var _ Writer = (*store.Store)(nil)
