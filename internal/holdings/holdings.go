package holdings

import (
	"context"
	"time"

	"github.com/uiachain/uianode/internal/amount"
	"github.com/uiachain/uianode/internal/platform/db"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

var (
	// ErrInvariant occurs when a confirmed balance mutation would produce a
	// negative balance. The confirmed path trusts upstream prechecks, so
	// this is a bug in the caller and processing of the block must halt.
	ErrInvariant = errors.New("Holdings invariant violation")
)

// Entry codes for a signed balance delta.
const (
	DebitCode  = byte('S')
	CreditCode = byte('R')
)

// Entry is an explicit signed delta against one holding. The sign is
// carried by the code rather than encoded into the quantity string.
type Entry struct {
	Code     byte
	Quantity amount.Amount
}

// Debit returns a debit entry for the quantity.
func Debit(qty amount.Amount) Entry {
	return Entry{Code: DebitCode, Quantity: qty}
}

// Credit returns a credit entry for the quantity.
func Credit(qty amount.Amount) Entry {
	return Entry{Code: CreditCode, Quantity: qty}
}

// Apply moves qty of currency from sender to recipient in the confirmed
// ledger. Both updates are issued together; if either fails the whole
// apply is reported failed and the block engine performs block level
// rollback. No compensation is attempted here.
func Apply(ctx context.Context, dbConn *db.DB, currency string, qty amount.Amount,
	sender, recipient string, now time.Time) error {

	ctx, span := trace.StartSpan(ctx, "internal.holdings.Apply")
	defer span.End()

	if err := UpdateBalance(ctx, dbConn, currency, sender, Debit(qty), now); err != nil {
		return errors.Wrap(err, "Failed to debit sender")
	}
	if err := UpdateBalance(ctx, dbConn, currency, recipient, Credit(qty), now); err != nil {
		return errors.Wrap(err, "Failed to credit recipient")
	}

	return nil
}

// Undo reverses a prior Apply for the same transfer, restoring both
// balances to their exact pre-apply values.
func Undo(ctx context.Context, dbConn *db.DB, currency string, qty amount.Amount,
	sender, recipient string, now time.Time) error {

	ctx, span := trace.StartSpan(ctx, "internal.holdings.Undo")
	defer span.End()

	if err := UpdateBalance(ctx, dbConn, currency, sender, Credit(qty), now); err != nil {
		return errors.Wrap(err, "Failed to credit sender")
	}
	if err := UpdateBalance(ctx, dbConn, currency, recipient, Debit(qty), now); err != nil {
		return errors.Wrap(err, "Failed to debit recipient")
	}

	return nil
}

// UpdateBalance applies a single signed delta to the holding for
// (currency, address). A holding missing from storage starts at zero.
func UpdateBalance(ctx context.Context, dbConn *db.DB, currency, address string,
	entry Entry, now time.Time) error {

	h, err := GetHolding(ctx, dbConn, currency, address, now)
	if err != nil {
		return err
	}

	switch entry.Code {
	case DebitCode:
		balance, err := h.Balance.Sub(entry.Quantity)
		if err != nil {
			return errors.Wrapf(ErrInvariant, "debit %s below zero for %s/%s",
				entry.Quantity.String(), currency, address)
		}
		h.Balance = balance
	case CreditCode:
		h.Balance = h.Balance.Add(entry.Quantity)
	default:
		return errors.Errorf("Unknown entry code : %c", entry.Code)
	}

	h.UpdatedAt = now

	return Save(ctx, dbConn, h)
}

// Balance returns the confirmed balance for (currency, address). Missing
// holdings read as zero.
func Balance(ctx context.Context, dbConn *db.DB, currency, address string) (amount.Amount, error) {
	h, err := GetHolding(ctx, dbConn, currency, address, time.Time{})
	if err != nil {
		return amount.Zero(), err
	}

	return h.Balance, nil
}
