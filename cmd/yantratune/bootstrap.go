package main

import (
	"context"
	"fmt"

	"yantratune/internal/logging"
	"yantratune/internal/seed"
	"yantratune/internal/store"
)

// bootstrapDemoData loads the sample catalog when the database is empty.
func bootstrapDemoData(ctx context.Context, dataStore *store.Store) error {
	loaded, err := seed.Load(ctx, dataStore)
	if err != nil {
		return fmt.Errorf("bootstrap demo data: %w", err)
	}
	if loaded {
		logging.Info("demo catalog loaded")
	} else {
		logging.Info("catalog not empty, demo data skipped")
	}
	return nil
}
