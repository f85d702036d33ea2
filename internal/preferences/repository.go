// Package preferences persists per-user likes, follows and saves in MongoDB.
package preferences

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"yantratune/internal/models"
)

const (
	preferencesCollection = "user_preferences"
	actionsCollection     = "user_actions"
)

var lists = []models.PreferenceList{models.LikedSongs, models.FollowedArtists, models.SavedAlbums}

// Repository reads and writes user preference documents.
type Repository struct {
	prefs   *mongo.Collection
	actions *mongo.Collection
}

// New returns a Repository over the collections of db.
func New(db *mongo.Database) *Repository {
	return &Repository{
		prefs:   db.Collection(preferencesCollection),
		actions: db.Collection(actionsCollection),
	}
}

// EnsureIndexes creates the unique user_id index and the action lookup index.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.prefs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create preferences index: %w", err)
	}
	if _, err := r.actions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
	}); err != nil {
		return fmt.Errorf("create actions index: %w", err)
	}
	return nil
}

// Get returns the preferences of userID. The first read creates an empty
// document.
func (r *Repository) Get(ctx context.Context, userID string) (models.UserPreferences, error) {
	now := time.Now().UTC()
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: string(models.LikedSongs), Value: bson.A{}},
		{Key: string(models.FollowedArtists), Value: bson.A{}},
		{Key: string(models.SavedAlbums), Value: bson.A{}},
		{Key: "created_at", Value: now},
		{Key: "updated_at", Value: now},
	}}}

	var prefs models.UserPreferences
	err := r.prefs.FindOneAndUpdate(ctx, bson.D{{Key: "user_id", Value: userID}}, update, returnAfterUpsert()).Decode(&prefs)
	if err != nil {
		return models.UserPreferences{}, fmt.Errorf("get preferences for %s: %w", userID, err)
	}
	return normalize(prefs, userID), nil
}

// Toggle adds entityID to list if absent and removes it otherwise, in a
// single atomic update. It reports whether entityID is present afterwards.
func (r *Repository) Toggle(ctx context.Context, userID string, list models.PreferenceList, entityID string) (bool, error) {
	if !slices.Contains(lists, list) {
		return false, fmt.Errorf("unknown preference list %q", list)
	}

	var prefs models.UserPreferences
	err := r.prefs.FindOneAndUpdate(ctx, bson.D{{Key: "user_id", Value: userID}}, togglePipeline(list, entityID), returnAfterUpsert()).Decode(&prefs)
	if err != nil {
		return false, fmt.Errorf("toggle %s for %s: %w", list, userID, err)
	}
	return slices.Contains(prefs.IDs(list), entityID), nil
}

// RecordAction appends one entry to the user action trail.
func (r *Repository) RecordAction(ctx context.Context, action models.UserAction) error {
	if action.Timestamp.IsZero() {
		action.Timestamp = time.Now().UTC()
	}
	if _, err := r.actions.InsertOne(ctx, action); err != nil {
		return fmt.Errorf("record %s for %s: %w", action.ActionType, action.UserID, err)
	}
	return nil
}

// togglePipeline builds an update pipeline. The first stage fills in any
// missing fields so the second can treat the lists as arrays.
func togglePipeline(list models.PreferenceList, entityID string) mongo.Pipeline {
	field := string(list)
	ref := "$" + field
	id := bson.D{{Key: "$literal", Value: entityID}}

	fill := bson.D{{Key: "created_at", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$created_at", "$$NOW"}}}}}
	for _, l := range lists {
		fill = append(fill, bson.E{Key: string(l), Value: bson.D{{Key: "$ifNull", Value: bson.A{"$" + string(l), bson.A{}}}}})
	}

	flip := bson.D{{Key: "$cond", Value: bson.D{
		{Key: "if", Value: bson.D{{Key: "$in", Value: bson.A{id, ref}}}},
		{Key: "then", Value: bson.D{{Key: "$filter", Value: bson.D{
			{Key: "input", Value: ref},
			{Key: "as", Value: "item"},
			{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$item", id}}}},
		}}}},
		{Key: "else", Value: bson.D{{Key: "$concatArrays", Value: bson.A{ref, bson.A{id}}}}},
	}}}

	return mongo.Pipeline{
		{{Key: "$set", Value: fill}},
		{{Key: "$set", Value: bson.D{
			{Key: field, Value: flip},
			{Key: "updated_at", Value: "$$NOW"},
		}}},
	}
}

func returnAfterUpsert() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
}

func normalize(p models.UserPreferences, userID string) models.UserPreferences {
	if p.UserID == "" {
		p.UserID = userID
	}
	if p.LikedSongs == nil {
		p.LikedSongs = []string{}
	}
	if p.FollowedArtists == nil {
		p.FollowedArtists = []string{}
	}
	if p.SavedAlbums == nil {
		p.SavedAlbums = []string{}
	}
	return p
}
