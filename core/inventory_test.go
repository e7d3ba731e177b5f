package core

import "testing"

func TestAddMintNewAndExistingSlot(t *testing.T) {
	inv := &Inventory{}
	mint := AddressFromLabel("usdc")
	if err := inv.AddMint(mint, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := inv.AddMint(mint, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i := inv.Find(mint)
	if i < 0 {
		t.Fatalf("expected mint to be found")
	}
	if inv.Slots[i].AmountRaw != 150 {
		t.Fatalf("got %d, want 150", inv.Slots[i].AmountRaw)
	}
}

func TestAddMintBasketFull(t *testing.T) {
	inv := &Inventory{}
	for i := 0; i < MaxBasketTokens; i++ {
		mint := AddressFromLabel("mint")
		mint[0] = byte(i + 1)
		if err := inv.AddMint(mint, 1); err != nil {
			t.Fatalf("unexpected error filling slot %d: %v", i, err)
		}
	}
	overflowMint := AddressFromLabel("overflow")
	if err := inv.AddMint(overflowMint, 1); err != ErrBasketFull {
		t.Fatalf("expected ErrBasketFull, got %v", err)
	}
}

func TestRemoveMintInsufficientBalance(t *testing.T) {
	inv := &Inventory{}
	mint := AddressFromLabel("usdc")
	inv.AddMint(mint, 10)
	if err := inv.RemoveMint(mint, 20); err != ErrMathOverflow {
		t.Fatalf("expected ErrMathOverflow, got %v", err)
	}
}

func TestCloseEmptyEntryRequiresZeroedSlot(t *testing.T) {
	inv := &Inventory{}
	mint := AddressFromLabel("usdc")
	inv.AddMint(mint, 10)
	if err := inv.CloseEmptyEntry(mint); err != ErrInventoryEntryNotEmpty {
		t.Fatalf("expected ErrInventoryEntryNotEmpty, got %v", err)
	}
	if err := inv.RemoveMint(mint, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := inv.CloseEmptyEntry(mint); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Find(mint) >= 0 {
		t.Fatalf("expected slot to be freed")
	}
}

func TestReclaimPendingPartial(t *testing.T) {
	inv := &Inventory{}
	mint := AddressFromLabel("usdc")
	inv.AddMint(mint, 0)
	if err := inv.MarkPendingMint(mint, 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reclaimed, err := inv.ReclaimPending(mint, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reclaimed != 10 {
		t.Fatalf("got %d, want 10", reclaimed)
	}
	i := inv.Find(mint)
	if inv.Slots[i].PendingMintRaw != 20 {
		t.Fatalf("got %d, want 20 remaining pending", inv.Slots[i].PendingMintRaw)
	}
}

func TestReclaimPendingNothingOutstanding(t *testing.T) {
	inv := &Inventory{}
	mint := AddressFromLabel("usdc")
	inv.AddMint(mint, 0)
	reclaimed, err := inv.ReclaimPending(mint, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reclaimed != 0 {
		t.Fatalf("got %d, want 0", reclaimed)
	}
}
