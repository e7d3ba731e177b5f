package core

// feedistribution.go – C9: pro-rata fee-recipient payout and the
// permissionless cranker that executes it. Grounded on
// programs/infinix/src/instructions/crank/crank_fee_distribution.rs (per-
// index recipient mint, portion-based pro-rata amount, zeroing the
// recipient slot on distribution, closing the record once fully
// distributed) and on core/transaction_fee_distribution_management.go's
// TxFeeManager.Distribute for the Go-idiomatic batch-fan-out shape. Batch
// minting is fanned out with golang.org/x/sync/errgroup, one goroutine
// per index, with no concurrency limit set.

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FeeRecipient is one configured payee and its fixed share of every fee
// distribution for a basket, expressed out of MaxFeeRecipientsPortion
// (spec.md §3's "Portion").
type FeeRecipient struct {
	Recipient Address
	Portion   Decimal
}

// ValidateFeeRecipients checks that recipients is non-empty, has no
// duplicate or zero addresses, fits within MaxFeeRecipients, and its
// portions sum to exactly MaxFeeRecipientsPortion.
func ValidateFeeRecipients(recipients []FeeRecipient) error {
	if len(recipients) == 0 || len(recipients) > MaxFeeRecipients {
		return ErrInvalidFeeRecipient
	}
	seen := make(map[Address]bool, len(recipients))
	total := ZeroDecimal
	for _, r := range recipients {
		if r.Recipient.IsZero() || seen[r.Recipient] {
			return ErrInvalidFeeRecipient
		}
		seen[r.Recipient] = true
		var err error
		total, err = total.Add(r.Portion)
		if err != nil {
			return err
		}
	}
	if !total.Equal(MaxFeeRecipientsPortion) {
		return ErrInvalidFeeRecipient
	}
	return nil
}

// FeeDistributionRecord is the per-distribution persisted state described
// in spec.md §3: a snapshot of a basket's pending fee-recipient shares
// split pro-rata across recipients, drained index by index by the
// cranker, and closed (refunding Cranker) once every recipient slot has
// been zeroed.
type FeeDistributionRecord struct {
	Index      uint64
	BasketID   Address
	Cranker    Address
	Amount     Decimal // amount_to_distribute, D18 scaled
	Recipients []FeeRecipient
	Closed     bool
}

// DistributeFees snapshots a basket's pending fee-recipient shares into a
// new FeeDistributionRecord and moves the amount into
// FeeRecipientsPendingFeeSharesToBeMinted until the cranker actually mints
// it out per recipient, per spec.md §6's distribute_fees op. index must
// be the next unused distribution index for this basket (strictly
// monotonic, as for Rebalance.Nonce); cranker is credited the record's
// rent when CrankFeeDistribution closes it.
func DistributeFees(b *Basket, index uint64, cranker Address, recipients []FeeRecipient) (*FeeDistributionRecord, error) {
	if err := ValidateFeeRecipients(recipients); err != nil {
		return nil, err
	}
	amount := b.FeeRecipientsPendingFeeShares
	if amount.IsZero() {
		return nil, nil
	}
	b.FeeRecipientsPendingFeeShares = ZeroDecimal
	toBeMinted, err := b.FeeRecipientsPendingFeeSharesToBeMinted.Add(amount)
	if err != nil {
		return nil, err
	}
	b.FeeRecipientsPendingFeeSharesToBeMinted = toBeMinted
	return &FeeDistributionRecord{
		Index:      index,
		BasketID:   b.BasketID,
		Cranker:    cranker,
		Amount:     amount,
		Recipients: append([]FeeRecipient(nil), recipients...),
	}, nil
}

// MintFunc performs the actual on-ledger mint of amountRaw (the basket
// token's raw smallest unit) to recipient, returning an error if the mint
// fails. Supplied by the caller so this package stays independent of any
// concrete token ledger; a typical adapter over Ledger is
// `func(ctx, to, amt) error { return ledger.Mint(to, basketTokenMint, amt) }`.
type MintFunc func(ctx context.Context, recipient Address, amountRaw uint64) error

// CloseFunc refunds a fee distribution record's rent/lamports to cranker
// once it has been fully drained, per spec.md §3's close-on-completion
// behaviour.
type CloseFunc func(ctx context.Context, cranker Address) error

// FeePaid is one recipient's settled payout from a single
// CrankFeeDistribution call, reported back so a caller can emit spec.md
// §6's per-recipient TVLFeePaid event without recomputing the pro-rata
// share itself.
type FeePaid struct {
	Recipient Address
	AmountRaw uint64
}

// CrankFeeDistribution mints every recipient named by indices its
// pro-rata share of rec.Amount concurrently (via golang.org/x/sync/errgroup;
// no concurrency limit is set), per spec.md §4.3's fee-distribution
// formula:
//
//	share_raw = floor(amount_to_distribute * portion / MaxFeeRecipientsPortion)
//
// converted to a raw token amount with floor rounding. After a
// successful mint, the recipient slot is zeroed (skipping an
// already-zeroed slot is a no-op, matching the original's idempotent
// re-invocation). Once every recipient is zero, the record is closed,
// close refunds its rent to Cranker, and the basket's
// FeeRecipientsPendingFeeSharesToBeMinted is decremented by the total
// amount actually minted (floor-converted back to D18). paid reports
// every recipient actually minted to in this call, in no particular
// order, for the caller's TVLFeePaid event emission.
func CrankFeeDistribution(ctx context.Context, rec *FeeDistributionRecord, b *Basket, indices []int, mint MintFunc, close CloseFunc) (closed bool, paid []FeePaid, err error) {
	if rec == nil || rec.Closed {
		return true, nil, nil
	}

	var (
		mu        sync.Mutex
		mintedRaw uint64
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, idx := range indices {
		idx := idx
		if idx < 0 || idx >= len(rec.Recipients) {
			return false, nil, ErrInvalidFeeRecipient
		}
		if rec.Recipients[idx].Recipient.IsZero() {
			continue
		}
		g.Go(func() error {
			shareScaled, merr := rec.Amount.MulDiv(rec.Recipients[idx].Portion, MaxFeeRecipientsPortion)
			if merr != nil {
				return merr
			}
			shareRaw, merr := shareScaled.ToTokenAmount(Floor)
			if merr != nil {
				return merr
			}
			if shareRaw > 0 {
				if merr := mint(gctx, rec.Recipients[idx].Recipient, shareRaw); merr != nil {
					return merr
				}
			}
			recipient := rec.Recipients[idx].Recipient
			mu.Lock()
			rec.Recipients[idx].Recipient = AddressZero
			mintedRaw += shareRaw
			paid = append(paid, FeePaid{Recipient: recipient, AmountRaw: shareRaw})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, nil, err
	}

	mintedScaled, err := FromTokenAmount(mintedRaw)
	if err != nil {
		return false, nil, err
	}
	remaining, err := b.FeeRecipientsPendingFeeSharesToBeMinted.Sub(mintedScaled)
	if err != nil {
		return false, nil, err
	}
	b.FeeRecipientsPendingFeeSharesToBeMinted = remaining

	for _, r := range rec.Recipients {
		if !r.Recipient.IsZero() {
			return false, paid, nil
		}
	}
	rec.Closed = true
	if close != nil {
		if err := close(ctx, rec.Cranker); err != nil {
			return false, paid, err
		}
	}
	return true, paid, nil
}
