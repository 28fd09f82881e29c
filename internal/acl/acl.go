package acl

import (
	"context"

	"github.com/uiachain/uianode/internal/platform/db"
	"github.com/uiachain/uianode/internal/platform/state"

	"go.opencensus.io/trace"
)

// Allowed evaluates whether a transfer of the asset to the recipient is
// permitted under the asset's access control list. Only the recipient is
// checked; the sender is gated by the issuer at issuance time.
//
//	whitelist + present -> allowed
//	whitelist + absent  -> denied
//	blacklist + present -> denied
//	blacklist + absent  -> allowed
func Allowed(ctx context.Context, dbConn *db.DB, as *state.Asset,
	recipient string) (bool, error) {

	ctx, span := trace.StartSpan(ctx, "internal.acl.Allowed")
	defer span.End()

	present, err := IsMember(ctx, dbConn, as.ACL.ListName(), as.Code, recipient)
	if err != nil {
		return false, err
	}

	return (as.ACL == state.ACLWhitelist) == present, nil
}
