package transfer

import (
	"context"
	"regexp"
	"time"

	"github.com/uiachain/uianode/internal/acl"
	"github.com/uiachain/uianode/internal/amount"
	"github.com/uiachain/uianode/internal/asset"
	"github.com/uiachain/uianode/internal/holdings"
	"github.com/uiachain/uianode/internal/platform/db"
	"github.com/uiachain/uianode/internal/platform/node"
	"github.com/uiachain/uianode/internal/platform/state"
	"github.com/uiachain/uianode/internal/pool"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

var (
	// ErrInvalidRecipient occurs when the recipient is not a 1-21 digit
	// numeric address.
	ErrInvalidRecipient = errors.New("Invalid recipient")

	// ErrInvalidEnvelopeAmount occurs when the envelope amount is nonzero.
	ErrInvalidEnvelopeAmount = errors.New("Invalid transaction amount")

	// ErrInvalidAssetAmount occurs when the payload amount does not parse
	// or is outside [1, 1e32).
	ErrInvalidAssetAmount = errors.New("Invalid asset transfer amount")

	// ErrUnknownAsset occurs when the currency is not registered.
	ErrUnknownAsset = errors.New("Cannot transfer unregistered asset")

	// ErrAssetWriteoff occurs when the asset has been written off.
	ErrAssetWriteoff = errors.New("Asset already writeoff")

	// ErrPermissionDenied occurs when the ACL forbids the recipient.
	ErrPermissionDenied = errors.New("Permission not allowed")

	// ErrRegistryUnavailable occurs when a registry or ACL lookup failed in
	// transit. Distinct from business rejections so the host can retry.
	ErrRegistryUnavailable = errors.New("Registry unavailable")

	// ErrMalformedAsset occurs when the payload fails shape validation.
	ErrMalformedAsset = errors.New("Malformed transfer asset")
)

// Ledger addresses are numeric strings of 1 to 21 digits.
var recipientRx = regexp.MustCompile(`^[0-9]{1,21}$`)

// FeeSchedule supplies the host's global transaction fee. The fee is
// currently independent of the transfer's content.
type FeeSchedule func() amount.Amount

// Transfer implements the user-issued-asset transfer transaction type. All
// collaborators are injected; the handler holds no ambient state and is
// driven entirely by the host pipeline.
type Transfer struct {
	MasterDB *db.DB
	Config   *node.Config
	Pool     *pool.Pool
	Fees     FeeSchedule
}

// NewTransfer wires a transfer handler with its collaborators.
func NewTransfer(masterDB *db.DB, cfg *node.Config, pl *pool.Pool) *Transfer {
	return &Transfer{
		MasterDB: masterDB,
		Config:   cfg,
		Pool:     pl,
		Fees:     func() amount.Amount { return cfg.FeeValue },
	}
}

// Create constructs a transfer transaction envelope. The envelope amount
// is forced to zero; the value moves through the asset payload.
func (t *Transfer) Create(data *CreateTransfer) *Transaction {
	return &Transaction{
		Amount:      0,
		RecipientID: data.RecipientID,
		Asset: &Asset{
			Currency: data.Currency,
			Amount:   data.Amount,
		},
	}
}

// Normalize checks the payload shape before the transaction enters the
// pipeline. Failure is ErrMalformedAsset.
func (t *Transfer) Normalize(tx *Transaction) error {
	return ValidateAsset(tx.Asset)
}

// Verify runs the stateless and registry backed validation of a transfer.
// Checks run in order and short-circuit on the first failure. No state is
// mutated on any path.
func (t *Transfer) Verify(ctx context.Context, tx *Transaction, sender *state.Account) error {
	ctx, span := trace.StartSpan(ctx, "internal.transfer.Verify")
	defer span.End()

	if !recipientRx.MatchString(tx.RecipientID) {
		return ErrInvalidRecipient
	}

	if tx.Amount != 0 {
		return ErrInvalidEnvelopeAmount
	}

	if tx.Asset == nil {
		return ErrMalformedAsset
	}

	if _, err := amount.ParseTransfer(tx.Asset.Amount); err != nil {
		return ErrInvalidAssetAmount
	}

	as, err := asset.Retrieve(ctx, t.MasterDB, tx.Asset.Currency)
	if err != nil {
		if errors.Cause(err) == asset.ErrNotFound {
			return ErrUnknownAsset
		}

		return errors.Wrap(ErrRegistryUnavailable, err.Error())
	}

	if as.Writeoff {
		return ErrAssetWriteoff
	}

	allowed, err := acl.Allowed(ctx, t.MasterDB, as, tx.RecipientID)
	if err != nil {
		return errors.Wrap(ErrRegistryUnavailable, err.Error())
	}
	if !allowed {
		return ErrPermissionDenied
	}

	return nil
}

// CalculateFee delegates to the host's global fee schedule. This type
// contributes no fee logic of its own.
func (t *Transfer) CalculateFee(ctx context.Context, tx *Transaction) amount.Amount {
	return t.Fees()
}

// Ready reports whether the transaction has gathered enough signatures to
// proceed. Single signer accounts are always ready. Multisignature
// accounts require multimin - 1 attached signatures; the minus one is the
// envelope's inherited multisignature policy and is preserved as is.
func (t *Transfer) Ready(tx *Transaction, sender *state.Account) bool {
	if len(sender.Multisignatures) == 0 {
		return true
	}

	if tx.Signatures == nil {
		return false
	}

	return len(tx.Signatures) >= sender.Multimin-1
}

// Apply commits the transfer against the confirmed ledger on block commit:
// debit the sender, credit the recipient. Sufficient sender balance is the
// responsibility of upstream prechecks; a negative result here surfaces as
// a holdings invariant violation and must halt the block.
func (t *Transfer) Apply(ctx context.Context, tx *Transaction, sender *state.Account) error {
	ctx, span := trace.StartSpan(ctx, "internal.transfer.Apply")
	defer span.End()

	qty, err := amount.Parse(tx.Asset.Amount)
	if err != nil {
		return errors.Wrap(err, "Failed to parse transfer amount")
	}

	return holdings.Apply(ctx, t.MasterDB, tx.Asset.Currency, qty,
		sender.Address, tx.RecipientID, contextNow(ctx))
}

// Undo reverses a prior Apply on block rollback, restoring both confirmed
// balances to their exact pre-apply values.
func (t *Transfer) Undo(ctx context.Context, tx *Transaction, sender *state.Account) error {
	ctx, span := trace.StartSpan(ctx, "internal.transfer.Undo")
	defer span.End()

	qty, err := amount.Parse(tx.Asset.Amount)
	if err != nil {
		return errors.Wrap(err, "Failed to parse transfer amount")
	}

	return holdings.Undo(ctx, t.MasterDB, tx.Asset.Currency, qty,
		sender.Address, tx.RecipientID, contextNow(ctx))
}

// ApplyUnconfirmed admits the transfer to the unconfirmed ledger. Unlike
// the confirmed path it rejects, before mutating anything, when the
// sender's tentative balance does not cover the amount.
func (t *Transfer) ApplyUnconfirmed(ctx context.Context, tx *Transaction, sender *state.Account) error {
	qty, err := amount.Parse(tx.Asset.Amount)
	if err != nil {
		return errors.Wrap(err, "Failed to parse transfer amount")
	}

	return t.Pool.Apply(tx.Asset.Currency, qty, sender.Address, tx.RecipientID)
}

// UndoUnconfirmed reverses a prior ApplyUnconfirmed on pool eviction.
func (t *Transfer) UndoUnconfirmed(ctx context.Context, tx *Transaction, sender *state.Account) error {
	qty, err := amount.Parse(tx.Asset.Amount)
	if err != nil {
		return errors.Wrap(err, "Failed to parse transfer amount")
	}

	return t.Pool.Undo(tx.Asset.Currency, qty, sender.Address, tx.RecipientID)
}

// Save persists the transfer row for the transaction.
func (t *Transfer) Save(ctx context.Context, tx *Transaction) error {
	row := Row{
		TxID:     tx.ID,
		Currency: tx.Asset.Currency,
		Amount:   tx.Asset.Amount,
	}

	return SaveRow(ctx, t.MasterDB, &row)
}

// contextNow returns the pipeline timestamp when present on the context.
func contextNow(ctx context.Context) time.Time {
	if v, ok := ctx.Value(node.KeyValues).(*node.Values); ok {
		return v.Now
	}
	return time.Now()
}
