package asset

import "github.com/uiachain/uianode/internal/platform/state"

// NewAsset defines what we require when registering an asset.
type NewAsset struct {
	Code          string        `json:"code"`
	IssuerAddress string        `json:"issuer_address"`
	ACL           state.ACLMode `json:"acl"`
}

// UpdateAsset defines what information may be provided to modify an
// existing asset registry entry.
type UpdateAsset struct {
	Writeoff *bool          `json:"writeoff,omitempty"`
	ACL      *state.ACLMode `json:"acl,omitempty"`
}
