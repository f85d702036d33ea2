package memstore

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"yantratune/internal/models"
)

// Preferences is an in-memory user preference repository.
type Preferences struct {
	mu      sync.Mutex
	users   map[string]*models.UserPreferences
	actions []models.UserAction
}

// NewPreferences returns an empty repository.
func NewPreferences() *Preferences {
	return &Preferences{users: make(map[string]*models.UserPreferences)}
}

// Get returns the preferences for userID, creating an empty record on first read.
func (p *Preferences) Get(_ context.Context, userID string) (models.UserPreferences, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return clonePreferences(p.userLocked(userID)), nil
}

// Toggle flips entityID in the named list and reports whether it is now present.
func (p *Preferences) Toggle(_ context.Context, userID string, list models.PreferenceList, entityID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prefs := p.userLocked(userID)
	var ids *[]string
	switch list {
	case models.LikedSongs:
		ids = &prefs.LikedSongs
	case models.FollowedArtists:
		ids = &prefs.FollowedArtists
	case models.SavedAlbums:
		ids = &prefs.SavedAlbums
	default:
		return false, fmt.Errorf("unknown preference list %q", list)
	}

	prefs.UpdatedAt = time.Now().UTC()
	if i := slices.Index(*ids, entityID); i >= 0 {
		*ids = slices.Delete(*ids, i, i+1)
		return false, nil
	}
	*ids = append(*ids, entityID)
	return true, nil
}

// RecordAction appends one action to the audit trail.
func (p *Preferences) RecordAction(_ context.Context, action models.UserAction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if action.Timestamp.IsZero() {
		action.Timestamp = time.Now().UTC()
	}
	p.actions = append(p.actions, action)
	return nil
}

// Actions returns a copy of the recorded actions.
func (p *Preferences) Actions() []models.UserAction {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.actions)
}

func (p *Preferences) userLocked(userID string) *models.UserPreferences {
	prefs, ok := p.users[userID]
	if !ok {
		now := time.Now().UTC()
		prefs = &models.UserPreferences{
			UserID:          userID,
			LikedSongs:      []string{},
			FollowedArtists: []string{},
			SavedAlbums:     []string{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		p.users[userID] = prefs
	}
	return prefs
}

func clonePreferences(src *models.UserPreferences) models.UserPreferences {
	clone := *src
	clone.LikedSongs = append([]string{}, src.LikedSongs...)
	clone.FollowedArtists = append([]string{}, src.FollowedArtists...)
	clone.SavedAlbums = append([]string{}, src.SavedAlbums...)
	return clone
}
