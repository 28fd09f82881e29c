package transfer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uiachain/uianode/internal/platform/db"

	"github.com/pkg/errors"
)

const storageKey = "transfers"

var (
	// ErrNotFound abstracts the standard not found error.
	ErrNotFound = errors.New("Transfer not found")
)

// SaveRow puts a single persisted transfer row in storage.
func SaveRow(ctx context.Context, dbConn *db.DB, row *Row) error {
	data, err := json.Marshal(row)
	if err != nil {
		return errors.Wrap(err, "Failed to marshal transfer")
	}

	return dbConn.Put(ctx, buildStoragePath(row.TxID), data)
}

// FetchRow retrieves a single persisted transfer row.
func FetchRow(ctx context.Context, dbConn *db.DB, txID string) (*Row, error) {
	data, err := dbConn.Fetch(ctx, buildStoragePath(txID))
	if err != nil {
		if err == db.ErrNotFound {
			return nil, ErrNotFound
		}

		return nil, err
	}

	row := Row{}
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshal transfer")
	}

	return &row, nil
}

// ListRows returns all persisted transfer rows.
func ListRows(ctx context.Context, dbConn *db.DB) ([]*Row, error) {
	data, err := dbConn.Search(ctx, storageKey)
	if err != nil {
		return nil, err
	}

	result := make([]*Row, 0, len(data))
	for _, b := range data {
		row := Row{}
		if err := json.Unmarshal(b, &row); err != nil {
			return nil, errors.Wrap(err, "Failed to unmarshal transfer")
		}
		result = append(result, &row)
	}

	return result, nil
}

// Returns the storage path prefix for a given identifier.
func buildStoragePath(txID string) string {
	return fmt.Sprintf("%s/%s", storageKey, txID)
}
