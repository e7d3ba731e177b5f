package core

// fees.go – C5: TVL-fee accrual and mint-fee calculation. Grounded on
// programs/infinix/src/utils/accounts/infinix.rs's poke / get_account_fee_until
// / calculate_fees_for_minting trio from original_source, implementing
// spec.md §4.3's nine-step poke algorithm and its mint-fee counterpart
// literally rather than approximating them.

// truncateToDayBoundary rounds ts down to the nearest multiple of
// DayInSeconds, matching the reference's choice to only ever advance
// last_poke by whole days so that sub-day remainders are carried forward
// rather than lost to rounding on every poke.
func truncateToDayBoundary(ts uint64) uint64 {
	return (ts / DayInSeconds) * DayInSeconds
}

// perSecondRate computes 1 - (1 - annual)^(1/YearInSeconds) via NthRoot,
// the same inversion Basket.SetTVLFee performs, shared here so the poke
// floor rate is derived identically.
func perSecondRate(annual Decimal) (Decimal, error) {
	if annual.IsZero() {
		return ZeroDecimal, nil
	}
	oneMinus, err := OneDecimal.Sub(annual)
	if err != nil {
		return Decimal{}, err
	}
	root, err := oneMinus.NthRoot(YearInSeconds)
	if err != nil {
		return Decimal{}, err
	}
	return OneDecimal.Sub(root)
}

// Poke accrues the TVL fee owed since the basket's LastPoke up to now,
// per spec.md §4.3's nine-step algorithm:
//
//  1. Truncate now to the day boundary; a no-op if that hasn't advanced.
//  2. elapsed = until - last_poke.
//  3. supply_total = raw supply + every pending accumulator.
//  4. tvl_to_use = max(floor-derived per-second rate, the basket's own rate).
//  5. denominator = (1 - tvl_to_use)^elapsed.
//  6. fee_shares = supply_total / denominator - supply_total.
//  7. Split fee_shares between the DAO and recipients via the
//     correction-vs-ratio comparison.
//  8. recipient_shares = fee_shares - dao_shares.
//  9. Accumulate both (floored) and advance last_poke.
func (b *Basket) Poke(now uint64, rawSupplyScaled Decimal, dao DAOFeeConfig) error {
	until := truncateToDayBoundary(now)
	if until <= b.LastPoke {
		return nil
	}
	elapsed := until - b.LastPoke

	supplyTotal, err := rawSupplyScaled.Add(b.DAOPendingFeeShares)
	if err != nil {
		return err
	}
	if supplyTotal, err = supplyTotal.Add(b.FeeRecipientsPendingFeeShares); err != nil {
		return err
	}
	if supplyTotal, err = supplyTotal.Add(b.FeeRecipientsPendingFeeSharesToBeMinted); err != nil {
		return err
	}

	feeFloorPerSec, err := perSecondRate(dao.Floor)
	if err != nil {
		return err
	}
	tvlToUse := Max(feeFloorPerSec, b.TVLFee)
	if tvlToUse.IsZero() || supplyTotal.IsZero() {
		b.LastPoke = until
		return nil
	}

	retained, err := OneDecimal.Sub(tvlToUse)
	if err != nil {
		return err
	}
	denominator, err := retained.Pow(elapsed)
	if err != nil {
		return err
	}

	feeShares, err := supplyTotal.divScale(denominator)
	if err != nil {
		return err
	}
	feeShares, err = feeShares.Sub(supplyTotal)
	if err != nil {
		return err
	}

	daoShares, recipientShares, err := splitFeeShares(feeShares, feeFloorPerSec, tvlToUse, dao)
	if err != nil {
		return err
	}
	if b.DAOPendingFeeShares, err = b.DAOPendingFeeShares.Add(daoShares); err != nil {
		return err
	}
	if b.FeeRecipientsPendingFeeShares, err = b.FeeRecipientsPendingFeeShares.Add(recipientShares); err != nil {
		return err
	}
	b.LastPoke = until
	return nil
}

// splitFeeShares divides feeShares between the DAO and the basket's fee
// recipients per spec.md §4.3 step 7:
//
//	correction = (fee_floor_per_sec + tvl_to_use - 1) / tvl_to_use
//	dao_ratio  = dao_numerator / dao_denominator
//	dao_shares = correction > dao_ratio
//	           ? ceil_div(fee_shares * correction, 1)
//	           : ceil_div(fee_shares * dao_numerator, dao_denominator)
//
// feeFloorPerSec + tvlToUse are both per-second rates far below 1 in every
// realistic configuration, so (feeFloorPerSec + tvlToUse - 1) underflows
// the unsigned representation; per spec.md §9's guidance not to invent
// intent where source behaviour is ambiguous, that underflow is treated
// as correction = 0 (documented in DESIGN.md), which always loses to a
// positive dao_ratio and so falls through to the proportional branch —
// the formula is preserved exactly for the one case (a floor so close to
// 1 that it does not underflow) where it could dominate.
func splitFeeShares(feeShares Decimal, feeFloorPerSec, tvlToUse Decimal, dao DAOFeeConfig) (Decimal, Decimal, error) {
	correction := ZeroDecimal
	sum, err := feeFloorPerSec.Add(tvlToUse)
	if err != nil {
		return Decimal{}, Decimal{}, err
	}
	if sum.GreaterThan(OneDecimal) {
		diff, err := sum.Sub(OneDecimal)
		if err != nil {
			return Decimal{}, Decimal{}, err
		}
		correction, err = diff.divScale(tvlToUse)
		if err != nil {
			return Decimal{}, Decimal{}, err
		}
	}

	daoRatio, err := dao.Numerator.divScale(dao.Denominator)
	if err != nil {
		return Decimal{}, Decimal{}, err
	}

	var daoShares Decimal
	if correction.GreaterThan(daoRatio) {
		daoShares, err = feeShares.ceilMulDivScale(correction)
	} else {
		daoShares, err = feeShares.ceilMulDiv(dao.Numerator, dao.Denominator)
	}
	if err != nil {
		return Decimal{}, Decimal{}, err
	}
	if daoShares.GreaterThan(feeShares) {
		daoShares = feeShares
	}
	recipientShares, err := feeShares.Sub(daoShares)
	if err != nil {
		return Decimal{}, Decimal{}, err
	}
	return daoShares, recipientShares, nil
}

// CalculateFeesForMinting returns the mint-fee portion owed to the DAO
// and to the basket's fee recipients for a mint of userSharesScaled basket
// tokens, per spec.md §4.3's mint-fee formula:
//
//	total_fee    = ceil(user_shares * mint_fee / 1e18)
//	dao_fee      = ceil(total_fee * dao_numerator / dao_denominator)
//	min_dao      = ceil(user_shares * dao_fee_floor / 1e18)
//	dao_fee      = max(dao_fee, min_dao)
//	total_fee    = max(total_fee, dao_fee)
//
// Both dao_fee and (total_fee - dao_fee) are accumulated into the
// basket's pending accumulators immediately, matching the poke split;
// the caller mints userSharesScaled - totalFee raw shares to the user and
// leaves totalFee behind as newly pending fee shares.
func (b *Basket) CalculateFeesForMinting(userSharesScaled Decimal, dao DAOFeeConfig) (totalFee Decimal, err error) {
	if b.MintFee.IsZero() {
		return ZeroDecimal, nil
	}
	totalFee, err = userSharesScaled.ceilMulDivScale(b.MintFee)
	if err != nil {
		return Decimal{}, err
	}
	daoFee, err := totalFee.ceilMulDiv(dao.Numerator, dao.Denominator)
	if err != nil {
		return Decimal{}, err
	}
	minDao, err := userSharesScaled.ceilMulDivScale(dao.Floor)
	if err != nil {
		return Decimal{}, err
	}
	if minDao.GreaterThan(daoFee) {
		daoFee = minDao
	}
	if daoFee.GreaterThan(totalFee) {
		totalFee = daoFee
	}

	recipientFee, err := totalFee.Sub(daoFee)
	if err != nil {
		return Decimal{}, err
	}
	if b.DAOPendingFeeShares, err = b.DAOPendingFeeShares.Add(daoFee); err != nil {
		return Decimal{}, err
	}
	if b.FeeRecipientsPendingFeeShares, err = b.FeeRecipientsPendingFeeShares.Add(recipientFee); err != nil {
		return Decimal{}, err
	}
	return totalFee, nil
}

// GetPendingFeeShares returns the sum of all fee shares accrued but not
// yet minted out, i.e. the dilution a caller must account for before
// trusting TotalSupply as the true circulating amount.
func (b *Basket) GetPendingFeeShares() (Decimal, error) {
	pending, err := b.DAOPendingFeeShares.Add(b.FeeRecipientsPendingFeeShares)
	if err != nil {
		return Decimal{}, err
	}
	return pending.Add(b.FeeRecipientsPendingFeeSharesToBeMinted)
}

// GetTotalSupply returns the basket token's fully-diluted supply: the
// ledger-reported circulating amount plus any pending, unminted fee
// shares (spec.md §4.3's get_total_supply).
func (b *Basket) GetTotalSupply(circulatingScaled Decimal) (Decimal, error) {
	pending, err := b.GetPendingFeeShares()
	if err != nil {
		return Decimal{}, err
	}
	return circulatingScaled.Add(pending)
}
