package preferences

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yantratune/internal/memstore"
	"yantratune/internal/models"
)

type failingActions struct {
	*memstore.Preferences
}

func (failingActions) RecordAction(context.Context, models.UserAction) error {
	return errors.New("actions collection unavailable")
}

func seedCatalog(t *testing.T) (*memstore.Catalog, []models.Song, models.Artist) {
	t.Helper()
	ctx := context.Background()
	c := memstore.NewCatalog()
	artist, err := c.CreateArtist(ctx, models.ArtistCreate{Name: "Queen"})
	require.NoError(t, err)

	var songs []models.Song
	for _, title := range []string{"One", "Two", "Three"} {
		s, err := c.CreateSong(ctx, models.SongCreate{Title: title, ArtistID: artist.ID})
		require.NoError(t, err)
		songs = append(songs, s)
	}
	return c, songs, artist
}

func TestToggleLikeRecordsActions(t *testing.T) {
	ctx := context.Background()
	c, songs, _ := seedCatalog(t)
	repo := memstore.NewPreferences()
	svc := New(repo, c)

	liked, err := svc.ToggleLike(ctx, "u1", songs[0].ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.ToggleLike(ctx, "u1", songs[0].ID)
	require.NoError(t, err)
	assert.False(t, liked)

	actions := repo.Actions()
	require.Len(t, actions, 2)
	assert.Equal(t, "like_song", actions[0].ActionType)
	assert.Equal(t, "unlike_song", actions[1].ActionType)
	assert.Equal(t, models.EntitySong, actions[1].EntityType)
}

func TestToggleSurvivesActionFailure(t *testing.T) {
	ctx := context.Background()
	c, _, artist := seedCatalog(t)
	svc := New(failingActions{memstore.NewPreferences()}, c)

	following, err := svc.ToggleFollow(ctx, "u1", artist.ID)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestLikedSongsPagesInLikeOrder(t *testing.T) {
	ctx := context.Background()
	c, songs, _ := seedCatalog(t)
	svc := New(memstore.NewPreferences(), c)

	for _, i := range []int{2, 0, 1} {
		_, err := svc.ToggleLike(ctx, "u1", songs[i].ID)
		require.NoError(t, err)
	}
	_, err := svc.ToggleLike(ctx, "u1", "deleted-song")
	require.NoError(t, err)

	page, total, err := svc.LikedSongs(ctx, "u1", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, page, 1)
	assert.Equal(t, "One", page[0].Title)

	all, _, err := svc.LikedSongs(ctx, "u1", 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Three", all[0].Title)
}

func TestListsForUnknownUserAreEmpty(t *testing.T) {
	ctx := context.Background()
	c, _, _ := seedCatalog(t)
	svc := New(memstore.NewPreferences(), c)

	albums, total, err := svc.SavedAlbums(ctx, "nobody", 0, 50)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, albums)
	assert.Empty(t, albums)

	artists, total, err := svc.FollowedArtists(ctx, "nobody", 0, 50)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, artists)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _, _ := seedCatalog(t)

	_, err := New(memstore.NewPreferences(), c).ToggleSave(ctx, "u1", "a1")
	assert.ErrorIs(t, err, context.Canceled)
}
