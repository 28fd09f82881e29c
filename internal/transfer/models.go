package transfer

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Currency and amount string length bounds for the transfer payload.
const (
	currencyMinLen = 1
	currencyMaxLen = 16
	amountMinLen   = 1
	amountMaxLen   = 33
)

// Asset is the immutable payload of a transfer transaction. The amount is
// kept as a decimal string; it is parsed and bounds checked at
// verification time and never mutated afterwards.
type Asset struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

// Transaction is the envelope layer's view of a transfer transaction. The
// envelope amount is always zero for this type; the real value moves
// through the asset payload.
type Transaction struct {
	ID          string   `json:"id"`
	Amount      uint64   `json:"amount"`
	RecipientID string   `json:"recipientId"`
	Signatures  []string `json:"signatures,omitempty"`
	Asset       *Asset   `json:"asset"`
}

// CreateTransfer defines what we require when constructing a transfer
// transaction.
type CreateTransfer struct {
	RecipientID string
	Currency    string
	Amount      string
}

// ValidateAsset checks the payload shape: currency 1-16 characters,
// amount string 1-33 characters, both required. Bounds count characters,
// not bytes, so multi-byte currency codes are measured the same way the
// envelope's schema validator measures them.
func ValidateAsset(a *Asset) error {
	if a == nil {
		return ErrMalformedAsset
	}
	currencyLen := utf8.RuneCountInString(a.Currency)
	if currencyLen < currencyMinLen || currencyLen > currencyMaxLen {
		return errors.Wrap(ErrMalformedAsset, "currency")
	}
	amountLen := utf8.RuneCountInString(a.Amount)
	if amountLen < amountMinLen || amountLen > amountMaxLen {
		return errors.Wrap(ErrMalformedAsset, "amount")
	}

	return nil
}
