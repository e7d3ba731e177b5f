package core

// ledger.go – the in-memory multi-mint token ledger that backs
// TransferFunc/MintFunc/NotifyBasketFunc in tests and the CLI's local
// demo mode. Adapted from the teacher's Ledger type
// (core/ledger.go's Transfer/Mint/Burn/BalanceOf/MintToken), dropped down
// to just the balance bookkeeping this package's non-goals call for
// (spec.md §1: on-chain transfer execution is consumed as a service, not
// reimplemented here) and keyed per (owner, mint) pair instead of the
// teacher's single governance-token balance map.

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

type balanceKey struct {
	Owner Address
	Mint  Address
}

// Ledger is a minimal thread-safe token-balance table: one raw balance per
// (owner, mint) pair. Its Transfer and Mint methods back this package's
// TransferFunc and MintFunc through small adapter closures, since their
// signatures differ.
type Ledger struct {
	mu       sync.RWMutex
	balances map[balanceKey]uint64
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{balances: make(map[balanceKey]uint64)}
}

// BalanceOf returns owner's raw balance of mint.
func (l *Ledger) BalanceOf(owner, mint Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[balanceKey{owner, mint}]
}

// Credit increases owner's balance of mint by amount, used to seed test
// fixtures and to land deposits from outside the ledger (e.g. a user's
// initial mint contribution).
func (l *Ledger) Credit(owner, mint Address, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[balanceKey{owner, mint}] += amount
}

// Transfer moves amount of mint from `from` to `to`, matching
// core/ledger.go's Transfer. It satisfies this package's TransferFunc
// shape when partially applied over a fixed mint/destination pair.
func (l *Ledger) Transfer(from, to, mint Address, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := balanceKey{from, mint}
	if l.balances[key] < amount {
		return fmt.Errorf("ledger: insufficient balance: %w", ErrMathOverflow)
	}
	l.balances[key] -= amount
	l.balances[balanceKey{to, mint}] += amount
	log.WithFields(log.Fields{"mint": mint.String(), "from": from.String(), "to": to.String(), "amount": amount}).Debug("ledger transfer")
	return nil
}

// Mint credits amount of mint to `to` out of nothing, matching
// core/ledger.go's Mint — used by fee-recipient and DAO distribution
// payouts, which are newly-issued basket-token shares rather than an
// existing balance moving.
func (l *Ledger) Mint(to, mint Address, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[balanceKey{to, mint}] += amount
	log.WithFields(log.Fields{"mint": mint.String(), "to": to.String(), "amount": amount}).Debug("ledger mint")
	return nil
}

// Burn debits amount of mint from `from`, matching core/ledger.go's Burn.
func (l *Ledger) Burn(from, mint Address, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := balanceKey{from, mint}
	if l.balances[key] < amount {
		return fmt.Errorf("ledger: insufficient balance to burn: %w", ErrMathOverflow)
	}
	l.balances[key] -= amount
	log.WithFields(log.Fields{"mint": mint.String(), "from": from.String(), "amount": amount}).Debug("ledger burn")
	return nil
}
