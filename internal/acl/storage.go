package acl

import (
	"context"
	"fmt"
	"strings"

	"github.com/uiachain/uianode/internal/platform/db"

	"github.com/pkg/errors"
)

const storageKey = "acl"

// Add records the address as a member of the named list for the currency.
func Add(ctx context.Context, dbConn *db.DB, listName, currency, address string) error {
	return dbConn.Put(ctx, buildStoragePath(listName, currency, address), marker)
}

// Remove deletes the address from the named list for the currency.
func Remove(ctx context.Context, dbConn *db.DB, listName, currency, address string) error {
	err := dbConn.Remove(ctx, buildStoragePath(listName, currency, address))
	if err != nil && errors.Cause(err) == db.ErrNotFound {
		return nil
	}
	return err
}

// IsMember reports whether the address is present in the named list for the
// currency. A transport failure is returned as an error, never as absence.
func IsMember(ctx context.Context, dbConn *db.DB, listName, currency,
	address string) (bool, error) {

	_, err := dbConn.Fetch(ctx, buildStoragePath(listName, currency, address))
	if err != nil {
		if errors.Cause(err) == db.ErrNotFound {
			return false, nil
		}

		return false, errors.Wrap(err, "Failed to query acl")
	}

	return true, nil
}

// Members returns all addresses in the named list for the currency.
func Members(ctx context.Context, dbConn *db.DB, listName, currency string) ([]string, error) {
	path := fmt.Sprintf("%s/%s/%s", storageKey, currency, listName)

	keys, err := dbConn.List(ctx, path)
	if err != nil {
		return nil, err
	}

	addresses := make([]string, 0, len(keys))
	for _, key := range keys {
		parts := strings.Split(key, "/")
		addresses = append(addresses, parts[len(parts)-1])
	}

	return addresses, nil
}

// Returns the storage path for a single membership record.
func buildStoragePath(listName, currency, address string) string {
	return fmt.Sprintf("%s/%s/%s/%s", storageKey, currency, listName, address)
}

// acl marker files carry a single byte so empty object writes are not
// confused with missing objects on any backend.
var marker = []byte{1}
