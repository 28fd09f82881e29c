package asset

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uiachain/uianode/internal/platform/db"
	"github.com/uiachain/uianode/internal/platform/state"

	"github.com/pkg/errors"
)

const storageKey = "assets"
const storageSubKey = "entry"

// Save puts a single asset registry entry in storage.
func Save(ctx context.Context, dbConn *db.DB, a *state.Asset) error {
	data, err := json.Marshal(a)
	if err != nil {
		return errors.Wrap(err, "Failed to marshal asset")
	}

	return dbConn.Put(ctx, buildStoragePath(a.Code), data)
}

// Fetch a single asset registry entry from storage.
func Fetch(ctx context.Context, dbConn *db.DB, code string) (*state.Asset, error) {
	key := buildStoragePath(code)

	b, err := dbConn.Fetch(ctx, key)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, ErrNotFound
		}

		return nil, errors.Wrap(err, "Failed to fetch asset")
	}

	a := state.Asset{}
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshal asset")
	}

	return &a, nil
}

// List returns the codes of all registered assets.
func List(ctx context.Context, dbConn *db.DB) ([]*state.Asset, error) {
	data, err := dbConn.Search(ctx, storageKey)
	if err != nil {
		return nil, err
	}

	result := make([]*state.Asset, 0, len(data))
	for _, b := range data {
		a := state.Asset{}
		if err := json.Unmarshal(b, &a); err != nil {
			return nil, errors.Wrap(err, "Failed to unmarshal asset")
		}
		result = append(result, &a)
	}

	return result, nil
}

// Returns the storage path prefix for a given identifier.
func buildStoragePath(code string) string {
	return fmt.Sprintf("%s/%s.%s", storageKey, code, storageSubKey)
}
