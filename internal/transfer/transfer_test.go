package transfer

import (
	"context"
	"testing"
	"time"

	"github.com/uiachain/uianode/internal/acl"
	"github.com/uiachain/uianode/internal/amount"
	"github.com/uiachain/uianode/internal/asset"
	"github.com/uiachain/uianode/internal/holdings"
	"github.com/uiachain/uianode/internal/platform/state"
	"github.com/uiachain/uianode/internal/platform/tests"
	"github.com/uiachain/uianode/internal/pool"

	"github.com/pkg/errors"
)

func setup(t *testing.T) (*tests.Test, *Transfer, context.Context) {
	test, err := tests.New()
	if err != nil {
		t.Fatalf("Failed to set up test fixtures : %v", err)
	}

	handler := NewTransfer(test.MasterDB, &test.NodeConfig, test.Pool)

	return test, handler, test.Context()
}

func mockUpAsset(ctx context.Context, test *tests.Test, code string, mode state.ACLMode,
	writeoff bool) error {

	nu := asset.NewAsset{
		Code:          code,
		IssuerAddress: "9000",
		ACL:           mode,
	}
	if err := asset.Create(ctx, test.MasterDB, &nu, time.Now()); err != nil {
		return err
	}

	if writeoff {
		w := true
		return asset.Update(ctx, test.MasterDB, code, &asset.UpdateAsset{Writeoff: &w}, time.Now())
	}

	return nil
}

func TestVerify(t *testing.T) {
	test, handler, ctx := setup(t)
	defer test.Close()

	if err := mockUpAsset(ctx, test, "GOLD", state.ACLWhitelist, false); err != nil {
		t.Fatalf("Failed to mock up asset : %v", err)
	}
	if err := mockUpAsset(ctx, test, "DEAD", state.ACLWhitelist, true); err != nil {
		t.Fatalf("Failed to mock up writeoff asset : %v", err)
	}
	if err := mockUpAsset(ctx, test, "BARS", state.ACLBlacklist, false); err != nil {
		t.Fatalf("Failed to mock up blacklist asset : %v", err)
	}

	// 2000 is whitelisted for GOLD and blacklisted for BARS.
	if err := acl.Add(ctx, test.MasterDB, state.ACLWhitelist.ListName(), "GOLD", "2000"); err != nil {
		t.Fatalf("Failed to add acl entry : %v", err)
	}
	if err := acl.Add(ctx, test.MasterDB, state.ACLBlacklist.ListName(), "BARS", "2000"); err != nil {
		t.Fatalf("Failed to add acl entry : %v", err)
	}

	sender := &state.Account{Address: "1000"}

	table := []struct {
		name string
		tx   *Transaction
		err  error
	}{
		{
			name: "valid",
			tx: &Transaction{RecipientID: "2000",
				Asset: &Asset{Currency: "GOLD", Amount: "100"}},
			err: nil,
		},
		{
			name: "nonNumericRecipient",
			tx: &Transaction{RecipientID: "12a",
				Asset: &Asset{Currency: "GOLD", Amount: "100"}},
			err: ErrInvalidRecipient,
		},
		{
			name: "emptyRecipient",
			tx: &Transaction{RecipientID: "",
				Asset: &Asset{Currency: "GOLD", Amount: "100"}},
			err: ErrInvalidRecipient,
		},
		{
			name: "recipientTooLong",
			tx: &Transaction{RecipientID: "1234567890123456789012",
				Asset: &Asset{Currency: "GOLD", Amount: "100"}},
			err: ErrInvalidRecipient,
		},
		{
			name: "nonzeroEnvelopeAmount",
			tx: &Transaction{RecipientID: "2000", Amount: 5,
				Asset: &Asset{Currency: "GOLD", Amount: "100"}},
			err: ErrInvalidEnvelopeAmount,
		},
		{
			name: "zeroAssetAmount",
			tx: &Transaction{RecipientID: "2000",
				Asset: &Asset{Currency: "GOLD", Amount: "0"}},
			err: ErrInvalidAssetAmount,
		},
		{
			name: "assetAmountTooLarge",
			tx: &Transaction{RecipientID: "2000",
				Asset: &Asset{Currency: "GOLD", Amount: "1e33"}},
			err: ErrInvalidAssetAmount,
		},
		{
			name: "assetAmountNotDecimal",
			tx: &Transaction{RecipientID: "2000",
				Asset: &Asset{Currency: "GOLD", Amount: "lots"}},
			err: ErrInvalidAssetAmount,
		},
		{
			name: "unregisteredCurrency",
			tx: &Transaction{RecipientID: "2000",
				Asset: &Asset{Currency: "FOO", Amount: "100"}},
			err: ErrUnknownAsset,
		},
		{
			name: "writeoffCurrency",
			tx: &Transaction{RecipientID: "2000",
				Asset: &Asset{Currency: "DEAD", Amount: "100"}},
			err: ErrAssetWriteoff,
		},
		{
			name: "whitelistAbsentRecipient",
			tx: &Transaction{RecipientID: "3000",
				Asset: &Asset{Currency: "GOLD", Amount: "100"}},
			err: ErrPermissionDenied,
		},
		{
			name: "blacklistedRecipient",
			tx: &Transaction{RecipientID: "2000",
				Asset: &Asset{Currency: "BARS", Amount: "100"}},
			err: ErrPermissionDenied,
		},
		{
			name: "blacklistAbsentRecipientAllowed",
			tx: &Transaction{RecipientID: "3000",
				Asset: &Asset{Currency: "BARS", Amount: "100"}},
			err: nil,
		},
	}

	for _, tt := range table {
		t.Run(tt.name, func(t *testing.T) {
			err := handler.Verify(ctx, tt.tx, sender)
			if errors.Cause(err) != tt.err {
				t.Errorf("got %v, want %v", err, tt.err)
			}
		})
	}
}

// A registry lookup that fails in transit must surface as
// ErrRegistryUnavailable, never as a business rejection, so the host can
// retry instead of discarding the transaction.
func TestVerifyRegistryOutage(t *testing.T) {
	test, handler, ctx := setup(t)
	defer test.Close()

	if err := mockUpAsset(ctx, test, "GOLD", state.ACLBlacklist, false); err != nil {
		t.Fatalf("Failed to mock up asset : %v", err)
	}

	// Closing the db makes every lookup fail in transit while the
	// registry entry itself exists.
	test.MasterDB.Close()

	sender := &state.Account{Address: "1000"}
	tx := &Transaction{RecipientID: "2000",
		Asset: &Asset{Currency: "GOLD", Amount: "100"}}

	err := handler.Verify(ctx, tx, sender)
	if errors.Cause(err) != ErrRegistryUnavailable {
		t.Errorf("got %v, want ErrRegistryUnavailable", err)
	}

	// An unregistered currency classifies the same way: the outage is
	// reported before absence can be determined.
	tx.Asset.Currency = "FOO"
	err = handler.Verify(ctx, tx, sender)
	if errors.Cause(err) != ErrRegistryUnavailable {
		t.Errorf("got %v, want ErrRegistryUnavailable", err)
	}
}

func TestVerifyOrder(t *testing.T) {
	test, handler, ctx := setup(t)
	defer test.Close()

	sender := &state.Account{Address: "1000"}

	// The recipient check fires before the envelope amount check.
	tx := &Transaction{RecipientID: "12a", Amount: 5,
		Asset: &Asset{Currency: "GOLD", Amount: "0"}}
	if err := handler.Verify(ctx, tx, sender); errors.Cause(err) != ErrInvalidRecipient {
		t.Errorf("got %v, want ErrInvalidRecipient", err)
	}

	// The amount bound check fires before the registry lookup.
	tx = &Transaction{RecipientID: "2000",
		Asset: &Asset{Currency: "FOO", Amount: "0"}}
	if err := handler.Verify(ctx, tx, sender); errors.Cause(err) != ErrInvalidAssetAmount {
		t.Errorf("got %v, want ErrInvalidAssetAmount", err)
	}
}

func TestNormalize(t *testing.T) {
	test, handler, _ := setup(t)
	defer test.Close()

	table := []struct {
		name  string
		asset *Asset
		ok    bool
	}{
		{"valid", &Asset{Currency: "GOLD", Amount: "100"}, true},
		{"maxLengths", &Asset{Currency: "ABCDEFGHIJKLMNOP", Amount: "123456789012345678901234567890123"}, true},
		// 16 characters but 48 bytes; bounds count characters.
		{"multiByteCurrencyAtMax", &Asset{Currency: "金金金金金金金金金金金金金金金金", Amount: "100"}, true},
		{"multiByteCurrencyTooLong", &Asset{Currency: "金金金金金金金金金金金金金金金金金", Amount: "100"}, false},
		{"missing", nil, false},
		{"emptyCurrency", &Asset{Currency: "", Amount: "100"}, false},
		{"currencyTooLong", &Asset{Currency: "ABCDEFGHIJKLMNOPQ", Amount: "100"}, false},
		{"emptyAmount", &Asset{Currency: "GOLD", Amount: ""}, false},
		{"amountTooLong", &Asset{Currency: "GOLD", Amount: "1234567890123456789012345678901234"}, false},
	}

	for _, tt := range table {
		t.Run(tt.name, func(t *testing.T) {
			err := handler.Normalize(&Transaction{RecipientID: "2000", Asset: tt.asset})
			if tt.ok && err != nil {
				t.Errorf("unexpected error : %v", err)
			}
			if !tt.ok && errors.Cause(err) != ErrMalformedAsset {
				t.Errorf("got %v, want ErrMalformedAsset", err)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	test, handler, _ := setup(t)
	defer test.Close()

	tx := handler.Create(&CreateTransfer{
		RecipientID: "2000",
		Currency:    "GOLD",
		Amount:      "100",
	})

	if tx.Amount != 0 {
		t.Errorf("envelope amount : got %d, want 0", tx.Amount)
	}
	if tx.RecipientID != "2000" {
		t.Errorf("recipient : got %s, want 2000", tx.RecipientID)
	}
	if tx.Asset == nil || tx.Asset.Currency != "GOLD" || tx.Asset.Amount != "100" {
		t.Errorf("asset payload : got %+v", tx.Asset)
	}
}

func TestConfirmedScenario(t *testing.T) {
	test, handler, ctx := setup(t)
	defer test.Close()

	if err := mockUpAsset(ctx, test, "GOLD", state.ACLWhitelist, false); err != nil {
		t.Fatalf("Failed to mock up asset : %v", err)
	}
	if err := acl.Add(ctx, test.MasterDB, state.ACLWhitelist.ListName(), "GOLD", "2000"); err != nil {
		t.Fatalf("Failed to add acl entry : %v", err)
	}

	seedHolding(t, ctx, test, "GOLD", "1000", "500")

	sender := &state.Account{Address: "1000"}
	tx := &Transaction{RecipientID: "2000",
		Asset: &Asset{Currency: "GOLD", Amount: "100"}}

	if err := handler.Verify(ctx, tx, sender); err != nil {
		t.Fatalf("Failed to verify : %v", err)
	}

	if err := handler.Apply(ctx, tx, sender); err != nil {
		t.Fatalf("Failed to apply : %v", err)
	}

	assertBalance(t, ctx, test, "GOLD", "1000", "400")
	assertBalance(t, ctx, test, "GOLD", "2000", "100")

	if err := handler.Undo(ctx, tx, sender); err != nil {
		t.Fatalf("Failed to undo : %v", err)
	}

	assertBalance(t, ctx, test, "GOLD", "1000", "500")
	assertBalance(t, ctx, test, "GOLD", "2000", "0")
}

func TestUnconfirmedScenario(t *testing.T) {
	test, handler, ctx := setup(t)
	defer test.Close()

	fifty, err := amount.Parse("50")
	if err != nil {
		t.Fatalf("Failed to parse amount : %v", err)
	}
	test.Pool.Credit("GOLD", "1000", fifty)

	sender := &state.Account{Address: "1000"}
	tx := &Transaction{RecipientID: "2000",
		Asset: &Asset{Currency: "GOLD", Amount: "100"}}

	err = handler.ApplyUnconfirmed(ctx, tx, sender)
	if errors.Cause(err) != pool.ErrInsufficientBalance {
		t.Fatalf("got %v, want ErrInsufficientBalance", err)
	}

	// The tentative balance is unchanged.
	if got := test.Pool.Balance("GOLD", "1000").String(); got != "50" {
		t.Errorf("sender : got %s, want 50", got)
	}

	// A covered transfer round-trips exactly.
	tx.Asset.Amount = "30"
	if err := handler.ApplyUnconfirmed(ctx, tx, sender); err != nil {
		t.Fatalf("Failed to apply unconfirmed : %v", err)
	}
	if got := test.Pool.Balance("GOLD", "1000").String(); got != "20" {
		t.Errorf("sender after apply : got %s, want 20", got)
	}
	if got := test.Pool.Balance("GOLD", "2000").String(); got != "30" {
		t.Errorf("recipient after apply : got %s, want 30", got)
	}

	if err := handler.UndoUnconfirmed(ctx, tx, sender); err != nil {
		t.Fatalf("Failed to undo unconfirmed : %v", err)
	}
	if got := test.Pool.Balance("GOLD", "1000").String(); got != "50" {
		t.Errorf("sender after undo : got %s, want 50", got)
	}
	if got := test.Pool.Balance("GOLD", "2000").String(); got != "0" {
		t.Errorf("recipient after undo : got %s, want 0", got)
	}
}

func TestCalculateFee(t *testing.T) {
	test, handler, ctx := setup(t)
	defer test.Close()

	fee := handler.CalculateFee(ctx, &Transaction{})
	if !fee.Equal(test.NodeConfig.FeeValue) {
		t.Errorf("got %s, want %s", fee.String(), test.NodeConfig.FeeValue.String())
	}
}

func TestReady(t *testing.T) {
	test, handler, _ := setup(t)
	defer test.Close()

	single := &state.Account{Address: "1000"}
	multi := &state.Account{
		Address:         "1000",
		Multisignatures: []string{"aa", "bb", "cc"},
		Multimin:        3,
	}

	table := []struct {
		name   string
		tx     *Transaction
		sender *state.Account
		ready  bool
	}{
		{"singleSigner", &Transaction{}, single, true},
		{"multisigNoSignatures", &Transaction{}, multi, false},
		{"multisigBelowThreshold", &Transaction{Signatures: []string{"s1"}}, multi, false},
		// The envelope policy requires one less signature than the
		// registered threshold.
		{"multisigThresholdMinusOne", &Transaction{Signatures: []string{"s1", "s2"}}, multi, true},
		{"multisigAtThreshold", &Transaction{Signatures: []string{"s1", "s2", "s3"}}, multi, true},
	}

	for _, tt := range table {
		t.Run(tt.name, func(t *testing.T) {
			if got := handler.Ready(tt.tx, tt.sender); got != tt.ready {
				t.Errorf("got %v, want %v", got, tt.ready)
			}
		})
	}
}

func seedHolding(t *testing.T, ctx context.Context, test *tests.Test, currency, address,
	balance string) {

	qty, err := amount.Parse(balance)
	if err != nil {
		t.Fatalf("Failed to parse balance : %v", err)
	}

	if err := holdings.Save(ctx, test.MasterDB, &state.Holding{
		Currency: currency, Address: address, Balance: qty,
	}); err != nil {
		t.Fatalf("Failed to seed holding : %v", err)
	}
}

func assertBalance(t *testing.T, ctx context.Context, test *tests.Test, currency, address,
	want string) {

	got, err := holdings.Balance(ctx, test.MasterDB, currency, address)
	if err != nil {
		t.Fatalf("Failed to fetch balance : %v", err)
	}
	if got.String() != want {
		t.Errorf("%s %s : got %s, want %s", currency, address, got.String(), want)
	}
}
