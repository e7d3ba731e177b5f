package core

// migration.go – C10: cross-program basket migration. Grounded on
// programs/infinix/src/instructions/owner/migration/migrate_infinix_tokens.rs:
// the registrar whitelist check, the new-program-!=-self check, the
// owned-by-new-program check, the successor-basket discriminator check
// (left commented out in the original; SPEC_FULL.md's Open Questions
// record the decision to enforce it here), the remaining-accounts grouped
// in threes per token (source token account, destination token account,
// mint), and the per-mint transfer_checked + basket-removal sequence.

import "context"

// TokenAccountGroup mirrors the original's "remaining accounts in groups
// of three" calling convention for one migrated mint: the basket's source
// token account, the successor basket's destination token account, and
// the mint account itself. Modelling it as a struct keeps the grouping
// explicit instead of leaving it implicit in a flat account list.
type TokenAccountGroup struct {
	Mint        Address
	Source      Address
	Destination Address
}

// TransferFunc performs one checked token transfer for a migration leg.
type TransferFunc func(ctx context.Context, group TokenAccountGroup, amountRaw uint64) error

// NotifyBasketFunc performs the CPI-equivalent call into the successor
// program/basket once a mint's balance has been moved, so the new basket
// can record the deposit (update_infinix_basket_in_new_infinix_program).
type NotifyBasketFunc func(ctx context.Context, newBasketID Address, group TokenAccountGroup, amountRaw uint64) error

// MigrateBasketTokens drains every non-empty inventory slot into the
// successor basket, one token at a time, per spec.md §4.7. The basket
// must already be in StatusMigrating (via Basket.BeginMigration) before
// this is called. A group whose mint is not in the inventory stops the
// call with ErrMintNotInInventory (groups already processed stay
// migrated); occupied mints that no group names are left in place.
func MigrateBasketTokens(
	ctx context.Context,
	b *Basket,
	inv *Inventory,
	registrar *ProgramRegistrar,
	oldProgram, newProgram Address,
	newBasketID Address,
	newBasketOwnedByNewProgram bool,
	newBasketDiscriminatorValid bool,
	groups []TokenAccountGroup,
	transfer TransferFunc,
	notify NotifyBasketFunc,
) error {
	if b.Status != StatusMigrating {
		return ErrInvalidBasketStatus
	}
	if newProgram == oldProgram {
		return ErrCantMigrateToSameProg
	}
	if !registrar.IsRegistered(newProgram) {
		return ErrProgramNotInRegistrar
	}
	if !newBasketOwnedByNewProgram {
		return ErrNewBasketNotOwnedByNewProg
	}
	if !newBasketDiscriminatorValid {
		return ErrInvalidSuccessorBasket
	}

	for _, group := range groups {
		i := inv.Find(group.Mint)
		if i < 0 {
			return ErrMintNotInInventory
		}
		amount := inv.Slots[i].AmountRaw
		if amount == 0 {
			continue
		}
		if err := transfer(ctx, group, amount); err != nil {
			return err
		}
		if notify != nil {
			if err := notify(ctx, newBasketID, group, amount); err != nil {
				return err
			}
		}
		inv.Slots[i].AmountRaw = 0
		if inv.Slots[i].PendingMintRaw == 0 && inv.Slots[i].PendingRedeemRaw == 0 {
			inv.Slots[i] = InventoryEntry{}
		}
	}
	return nil
}
