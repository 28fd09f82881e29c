package holdings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uiachain/uianode/internal/platform/db"
	"github.com/uiachain/uianode/internal/platform/state"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound abstracts the standard not found error.
	ErrNotFound = errors.New("Holding not found")
)

const storageKey = "holdings"

// GetHolding returns the holding for (currency, address), creating a zero
// balance holding when none exists in storage.
func GetHolding(ctx context.Context, dbConn *db.DB, currency, address string,
	now time.Time) (*state.Holding, error) {

	result, err := Fetch(ctx, dbConn, currency, address)
	if err == nil {
		return result, nil
	}
	if errors.Cause(err) != ErrNotFound {
		return nil, err
	}

	result = &state.Holding{
		Currency:  currency,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return result, nil
}

// Save puts a single holding in storage.
func Save(ctx context.Context, dbConn *db.DB, h *state.Holding) error {
	data, err := json.Marshal(h)
	if err != nil {
		return errors.Wrap(err, "Failed to marshal holding")
	}

	return dbConn.Put(ctx, buildStoragePath(h.Currency, h.Address), data)
}

// Fetch a single holding from storage.
func Fetch(ctx context.Context, dbConn *db.DB, currency, address string) (*state.Holding, error) {
	key := buildStoragePath(currency, address)

	b, err := dbConn.Fetch(ctx, key)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, ErrNotFound
		}

		return nil, errors.Wrap(err, "Failed to fetch holding")
	}

	h := state.Holding{}
	if err := json.Unmarshal(b, &h); err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshal holding")
	}

	return &h, nil
}

// List returns all holdings of a currency.
func List(ctx context.Context, dbConn *db.DB, currency string) ([]*state.Holding, error) {
	data, err := dbConn.Search(ctx, fmt.Sprintf("%s/%s", storageKey, currency))
	if err != nil {
		return nil, err
	}

	result := make([]*state.Holding, 0, len(data))
	for _, b := range data {
		h := state.Holding{}
		if err := json.Unmarshal(b, &h); err != nil {
			return nil, errors.Wrap(err, "Failed to unmarshal holding")
		}
		result = append(result, &h)
	}

	return result, nil
}

// Returns the storage path prefix for a given identifier.
func buildStoragePath(currency, address string) string {
	return fmt.Sprintf("%s/%s/%s", storageKey, currency, address)
}
