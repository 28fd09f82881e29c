package pool

import (
	"testing"

	"github.com/uiachain/uianode/internal/amount"

	"github.com/pkg/errors"
)

func TestApplyUndoRoundTrip(t *testing.T) {
	p := New()

	start, _ := amount.Parse("500")
	qty, _ := amount.Parse("100")

	p.Credit("GOLD", "1000", start)

	for i := 0; i < 5; i++ {
		if err := p.Apply("GOLD", qty, "1000", "2000"); err != nil {
			t.Fatalf("cycle %d : Failed to apply : %v", i, err)
		}

		if got := p.Balance("GOLD", "1000").String(); got != "400" {
			t.Fatalf("cycle %d : sender after apply : got %s, want 400", i, got)
		}
		if got := p.Balance("GOLD", "2000").String(); got != "100" {
			t.Fatalf("cycle %d : recipient after apply : got %s, want 100", i, got)
		}

		if err := p.Undo("GOLD", qty, "1000", "2000"); err != nil {
			t.Fatalf("cycle %d : Failed to undo : %v", i, err)
		}

		if got := p.Balance("GOLD", "1000"); !got.Equal(start) {
			t.Fatalf("cycle %d : sender after undo : got %s, want %s", i, got.String(), start.String())
		}
		if got := p.Balance("GOLD", "2000"); !got.IsZero() {
			t.Fatalf("cycle %d : recipient after undo : got %s, want 0", i, got.String())
		}
	}
}

func TestInsufficientBalance(t *testing.T) {
	p := New()

	balance, _ := amount.Parse("50")
	qty, _ := amount.Parse("100")

	p.Credit("GOLD", "1000", balance)

	err := p.Apply("GOLD", qty, "1000", "2000")
	if errors.Cause(err) != ErrInsufficientBalance {
		t.Fatalf("got %v, want ErrInsufficientBalance", err)
	}

	// No balance was touched.
	if got := p.Balance("GOLD", "1000"); !got.Equal(balance) {
		t.Errorf("sender : got %s, want %s", got.String(), balance.String())
	}
	if got := p.Balance("GOLD", "2000"); !got.IsZero() {
		t.Errorf("recipient : got %s, want 0", got.String())
	}
}

func TestApplyExactBalance(t *testing.T) {
	p := New()

	qty, _ := amount.Parse("100")

	p.Credit("GOLD", "1000", qty)

	// Spending the full tentative balance is allowed.
	if err := p.Apply("GOLD", qty, "1000", "2000"); err != nil {
		t.Fatalf("Failed to apply : %v", err)
	}

	if got := p.Balance("GOLD", "1000"); !got.IsZero() {
		t.Errorf("sender : got %s, want 0", got.String())
	}
}

func TestUndoInvariant(t *testing.T) {
	p := New()

	qty, _ := amount.Parse("100")

	// Undo of a transfer that was never applied.
	err := p.Undo("GOLD", qty, "1000", "2000")
	if errors.Cause(err) != ErrInvariant {
		t.Fatalf("got %v, want ErrInvariant", err)
	}

	if got := p.Balance("GOLD", "1000"); !got.IsZero() {
		t.Errorf("sender : got %s, want 0", got.String())
	}
}

func TestZeroDefaultAndReset(t *testing.T) {
	p := New()

	if got := p.Balance("GOLD", "1000"); !got.IsZero() {
		t.Errorf("absent key : got %s, want 0", got.String())
	}

	qty, _ := amount.Parse("10")
	p.Credit("GOLD", "1000", qty)

	p.Reset()

	if got := p.Balance("GOLD", "1000"); !got.IsZero() {
		t.Errorf("after reset : got %s, want 0", got.String())
	}
}

func TestCurrenciesIndependent(t *testing.T) {
	p := New()

	gold, _ := amount.Parse("100")
	silver, _ := amount.Parse("7")

	p.Credit("GOLD", "1000", gold)
	p.Credit("SILVER", "1000", silver)

	if err := p.Apply("SILVER", silver, "1000", "2000"); err != nil {
		t.Fatalf("Failed to apply : %v", err)
	}

	if got := p.Balance("GOLD", "1000"); !got.Equal(gold) {
		t.Errorf("gold : got %s, want %s", got.String(), gold.String())
	}
	if got := p.Balance("SILVER", "1000"); !got.IsZero() {
		t.Errorf("silver : got %s, want 0", got.String())
	}
}
