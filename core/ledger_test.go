package core

import (
	"errors"
	"testing"
)

func TestLedgerCreditAndBalanceOf(t *testing.T) {
	l := NewLedger()
	owner := AddressFromLabel("owner")
	mint := AddressFromLabel("usdc")
	l.Credit(owner, mint, 100)
	if got := l.BalanceOf(owner, mint); got != 100 {
		t.Fatalf("got %d, want 100", got)
	}
}

func TestLedgerTransferMovesBalance(t *testing.T) {
	l := NewLedger()
	from := AddressFromLabel("from")
	to := AddressFromLabel("to")
	mint := AddressFromLabel("usdc")
	l.Credit(from, mint, 100)
	if err := l.Transfer(from, to, mint, 40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.BalanceOf(from, mint); got != 60 {
		t.Fatalf("got from=%d, want 60", got)
	}
	if got := l.BalanceOf(to, mint); got != 40 {
		t.Fatalf("got to=%d, want 40", got)
	}
}

func TestLedgerTransferRejectsInsufficientBalance(t *testing.T) {
	l := NewLedger()
	from := AddressFromLabel("from")
	to := AddressFromLabel("to")
	mint := AddressFromLabel("usdc")
	l.Credit(from, mint, 10)
	err := l.Transfer(from, to, mint, 20)
	if !errors.Is(err, ErrMathOverflow) {
		t.Fatalf("expected wrapped ErrMathOverflow, got %v", err)
	}
}

func TestLedgerMintCreditsFromNothing(t *testing.T) {
	l := NewLedger()
	to := AddressFromLabel("to")
	mint := AddressFromLabel("basket-token")
	if err := l.Mint(to, mint, 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.BalanceOf(to, mint); got != 500 {
		t.Fatalf("got %d, want 500", got)
	}
}

func TestLedgerBurnDebitsBalance(t *testing.T) {
	l := NewLedger()
	owner := AddressFromLabel("owner")
	mint := AddressFromLabel("basket-token")
	l.Credit(owner, mint, 500)
	if err := l.Burn(owner, mint, 200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.BalanceOf(owner, mint); got != 300 {
		t.Fatalf("got %d, want 300", got)
	}
}

func TestLedgerBurnRejectsInsufficientBalance(t *testing.T) {
	l := NewLedger()
	owner := AddressFromLabel("owner")
	mint := AddressFromLabel("basket-token")
	l.Credit(owner, mint, 10)
	err := l.Burn(owner, mint, 20)
	if !errors.Is(err, ErrMathOverflow) {
		t.Fatalf("expected wrapped ErrMathOverflow, got %v", err)
	}
}
