package core

// inventory.go – C3: the basket's per-mint token ledger. Grounded on
// programs/infinix/src/utils/accounts/infinix.rs's inventory slot layout
// (fixed-size array of entries, AddressZero marking an empty slot) and on
// programs/infinix/src/instructions/close_user_pending_token_amount.rs for
// the supplemental ReclaimPending operation noted in SPEC_FULL.md.

// InventoryEntry tracks one token mint's holdings and in-flight amounts
// within a basket, per spec.md §3. Amounts are raw (token-native decimals,
// not D18-scaled) since they mirror actual token account balances.
type InventoryEntry struct {
	Mint             Address
	AmountRaw        uint64
	PendingMintRaw   uint64
	PendingRedeemRaw uint64
}

func (e InventoryEntry) empty() bool {
	return e.Mint.IsZero()
}

// Inventory is the basket's fixed-capacity slot array. A zero-value slot
// (Mint == AddressZero) marks an unused position, matching the
// reference's on-chain account layout (no separate length prefix).
type Inventory struct {
	Slots [MaxBasketTokens]InventoryEntry
}

// Find returns the slot index holding mint, or -1 if absent.
func (inv *Inventory) Find(mint Address) int {
	for i := range inv.Slots {
		if !inv.Slots[i].empty() && inv.Slots[i].Mint == mint {
			return i
		}
	}
	return -1
}

// firstEmpty returns the index of the first unused slot, or -1 if full.
func (inv *Inventory) firstEmpty() int {
	for i := range inv.Slots {
		if inv.Slots[i].empty() {
			return i
		}
	}
	return -1
}

// AddMint either credits an existing slot for mint or occupies the first
// free slot, per spec.md §4.1's add_to_basket. Returns ErrBasketFull when
// mint is new and no slot remains.
func (inv *Inventory) AddMint(mint Address, amountRaw uint64) error {
	if i := inv.Find(mint); i >= 0 {
		inv.Slots[i].AmountRaw += amountRaw
		return nil
	}
	i := inv.firstEmpty()
	if i < 0 {
		return ErrBasketFull
	}
	inv.Slots[i] = InventoryEntry{Mint: mint, AmountRaw: amountRaw}
	return nil
}

// RemoveMint debits amountRaw from mint's balance, per spec.md §4.1's
// remove_from_basket. It does not compact the slot even if the balance
// reaches zero; slots are freed only by CloseEmptyEntry, or by
// MigrateBasketTokens for a drained slot with nothing pending, so that
// pending mint/redeem bookkeeping on the same slot is never lost
// silently.
func (inv *Inventory) RemoveMint(mint Address, amountRaw uint64) error {
	i := inv.Find(mint)
	if i < 0 {
		return ErrMintNotInInventory
	}
	if inv.Slots[i].AmountRaw < amountRaw {
		return ErrMathOverflow
	}
	inv.Slots[i].AmountRaw -= amountRaw
	return nil
}

// CloseEmptyEntry frees mint's slot once its balance and pending amounts
// are all zero, per spec.md §9 (slot compaction keeps the fixed-capacity
// array usable across add/remove churn). Returns ErrInventoryEntryNotEmpty
// if anything is still outstanding.
func (inv *Inventory) CloseEmptyEntry(mint Address) error {
	i := inv.Find(mint)
	if i < 0 {
		return ErrMintNotInInventory
	}
	e := inv.Slots[i]
	if e.AmountRaw != 0 || e.PendingMintRaw != 0 || e.PendingRedeemRaw != 0 {
		return ErrInventoryEntryNotEmpty
	}
	inv.Slots[i] = InventoryEntry{}
	return nil
}

// MarkPendingMint records amountRaw as owed to a user from an in-flight
// mint that the basket has accepted payment for but not yet settled.
// Nothing outside the tests calls it; MigrateBasketTokens only reads the
// pending amounts to decide whether a drained slot is freed.
func (inv *Inventory) MarkPendingMint(mint Address, amountRaw uint64) error {
	i := inv.Find(mint)
	if i < 0 {
		return ErrMintNotInInventory
	}
	inv.Slots[i].PendingMintRaw += amountRaw
	return nil
}

// ReclaimPending is the supplemental operation grounded on
// close_user_pending_token_amount.rs: it releases up to amountRaw of the
// slot's pending amounts for mint (pending mint first, then pending
// redeem), decrementing the basket's bookkeeping by exactly what is
// returned. Pending amounts are kept per slot, not per user.
func (inv *Inventory) ReclaimPending(mint Address, amountRaw uint64) (uint64, error) {
	i := inv.Find(mint)
	if i < 0 {
		return 0, ErrMintNotInInventory
	}
	e := &inv.Slots[i]
	reclaimed := e.PendingMintRaw + e.PendingRedeemRaw
	if reclaimed == 0 {
		return 0, nil
	}
	if amountRaw < reclaimed {
		reclaimed = amountRaw
	}
	remaining := reclaimed
	if e.PendingMintRaw >= remaining {
		e.PendingMintRaw -= remaining
		remaining = 0
	} else {
		remaining -= e.PendingMintRaw
		e.PendingMintRaw = 0
	}
	if remaining > 0 {
		if e.PendingRedeemRaw < remaining {
			return 0, ErrMathOverflow
		}
		e.PendingRedeemRaw -= remaining
	}
	return reclaimed, nil
}

// TotalNonEmpty reports how many inventory slots are occupied.
func (inv *Inventory) TotalNonEmpty() int {
	n := 0
	for i := range inv.Slots {
		if !inv.Slots[i].empty() {
			n++
		}
	}
	return n
}
