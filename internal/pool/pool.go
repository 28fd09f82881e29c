package pool

import (
	"sync"

	"github.com/uiachain/uianode/internal/amount"

	"github.com/pkg/errors"
)

var (
	// ErrInsufficientBalance occurs when a sender's tentative balance does
	// not cover the transfer. This is a normal pool admission denial.
	ErrInsufficientBalance = errors.New("Asset balance not enough")

	// ErrInvariant occurs when an undo would drive a recipient's tentative
	// balance negative. Undo only ever reverses a prior successful apply,
	// so this is a programmer error.
	ErrInvariant = errors.New("Pool invariant violation")
)

// Key identifies one tentative balance record.
type Key struct {
	Currency string
	Address  string
}

// Pool holds the unconfirmed balance ledger. It is process-wide, in-memory
// and scoped to node uptime; restart clears it. Balances default to zero
// when absent. The host pool manager serializes admissions touching the
// same key; the internal lock only keeps individual operations consistent.
type Pool struct {
	mu       sync.Mutex
	balances map[Key]amount.Amount
}

// New returns an empty unconfirmed ledger.
func New() *Pool {
	return &Pool{
		balances: make(map[Key]amount.Amount),
	}
}

// Balance returns the tentative balance for (currency, address).
func (p *Pool) Balance(currency, address string) amount.Amount {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.balances[Key{Currency: currency, Address: address}]
}

// Credit adds qty to the tentative balance for (currency, address). Used
// when layering the pool on top of the confirmed ledger.
func (p *Pool) Credit(currency, address string, qty amount.Amount) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := Key{Currency: currency, Address: address}
	p.balances[key] = p.balances[key].Add(qty)
}

// Apply moves qty of currency from sender to recipient in the tentative
// ledger. When the sender's balance does not cover qty the operation fails
// with ErrInsufficientBalance and no balance is touched.
func (p *Pool) Apply(currency string, qty amount.Amount, sender, recipient string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	senderKey := Key{Currency: currency, Address: sender}

	surplus, err := p.balances[senderKey].Sub(qty)
	if err != nil {
		return ErrInsufficientBalance
	}
	p.balances[senderKey] = surplus

	recipientKey := Key{Currency: currency, Address: recipient}
	p.balances[recipientKey] = p.balances[recipientKey].Add(qty)

	return nil
}

// Undo reverses a prior successful Apply for the same transfer. The
// recipient must hold at least qty; a shortfall means the transfer was
// never applied and is reported as an invariant violation.
func (p *Pool) Undo(currency string, qty amount.Amount, sender, recipient string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	recipientKey := Key{Currency: currency, Address: recipient}

	remainder, err := p.balances[recipientKey].Sub(qty)
	if err != nil {
		return errors.Wrapf(ErrInvariant, "undo %s exceeds recipient balance for %s/%s",
			qty.String(), currency, recipient)
	}

	senderKey := Key{Currency: currency, Address: sender}
	p.balances[senderKey] = p.balances[senderKey].Add(qty)
	p.balances[recipientKey] = remainder

	return nil
}

// Reset drops all tentative balances.
func (p *Pool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.balances = make(map[Key]amount.Amount)
}
