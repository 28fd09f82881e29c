package state

import (
	"time"

	"github.com/uiachain/uianode/internal/amount"
)

// ACLMode selects which access control list governs transfers of an asset.
type ACLMode uint8

const (
	// ACLBlacklist denies transfers to addresses present in the list.
	ACLBlacklist ACLMode = 0

	// ACLWhitelist permits transfers only to addresses present in the list.
	ACLWhitelist ACLMode = 1
)

// ListName returns the storage list name for the mode.
func (m ACLMode) ListName() string {
	if m == ACLWhitelist {
		return "acl_white"
	}
	return "acl_black"
}

// Asset is a registry entry for a centrally issued currency.
type Asset struct {
	Code          string    `json:"code"`
	IssuerAddress string    `json:"issuer_address"`
	Writeoff      bool      `json:"writeoff"`
	ACL           ACLMode   `json:"acl"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Holding is a confirmed balance record for one (currency, address) pair.
type Holding struct {
	Currency  string        `json:"currency"`
	Address   string        `json:"address"`
	Balance   amount.Amount `json:"balance"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Account is the envelope layer's view of the sending account.
type Account struct {
	Address         string   `json:"address"`
	Multisignatures []string `json:"multisignatures"`
	Multimin        int      `json:"multimin"`
}
