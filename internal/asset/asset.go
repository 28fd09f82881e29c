package asset

import (
	"context"
	"time"

	"github.com/uiachain/uianode/internal/platform/db"
	"github.com/uiachain/uianode/internal/platform/state"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

var (
	// ErrNotFound abstracts the standard not found error.
	ErrNotFound = errors.New("Asset not found")

	// ErrUnavailable occurs when the registry could not be reached. It is
	// never reported for a missing entry.
	ErrUnavailable = errors.New("Asset registry unavailable")
)

// Retrieve gets the specified asset registry entry from the database.
// A missing entry is ErrNotFound; a transport failure is wrapped as
// ErrUnavailable so callers can tell the two apart.
func Retrieve(ctx context.Context, dbConn *db.DB, code string) (*state.Asset, error) {
	ctx, span := trace.StartSpan(ctx, "internal.asset.Retrieve")
	defer span.End()

	a, err := Fetch(ctx, dbConn, code)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return nil, ErrNotFound
		}

		return nil, errors.Wrap(ErrUnavailable, err.Error())
	}

	return a, nil
}

// Create registers the asset.
func Create(ctx context.Context, dbConn *db.DB, nu *NewAsset, now time.Time) error {
	ctx, span := trace.StartSpan(ctx, "internal.asset.Create")
	defer span.End()

	a := state.Asset{
		Code:          nu.Code,
		IssuerAddress: nu.IssuerAddress,
		ACL:           nu.ACL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return Save(ctx, dbConn, &a)
}

// Update modifies an existing asset registry entry.
func Update(ctx context.Context, dbConn *db.DB, code string, upd *UpdateAsset,
	now time.Time) error {

	ctx, span := trace.StartSpan(ctx, "internal.asset.Update")
	defer span.End()

	a, err := Fetch(ctx, dbConn, code)
	if err != nil {
		return err
	}

	if upd.Writeoff != nil {
		a.Writeoff = *upd.Writeoff
	}
	if upd.ACL != nil {
		a.ACL = *upd.ACL
	}

	a.UpdatedAt = now

	return Save(ctx, dbConn, a)
}
