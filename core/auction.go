package core

// auction.go – C7: Dutch-auction construction and pricing. Grounded on
// programs/infinix/src/instructions/auction/open_auction_permissionless.rs
// and spec.md §4.5's price-decay formula and sell/buy limit derivation.

// Auction is one running Dutch auction for a (sell, buy) token pair
// within a basket's current rebalance nonce.
type Auction struct {
	ID       uint64
	Nonce    uint64
	BasketID Address
	Sell     Address
	Buy      Address
	Start    uint64
	End      uint64

	PriceStart Decimal
	PriceEnd   Decimal

	// SellLimit and BuyLimit are the raw amounts of Sell/Buy still
	// available to trade against this auction; each bid decrements both
	// (spec.md §4.5 step 5).
	SellLimit uint64
	BuyLimit  uint64
}

// auctionPairKey identifies a token pair regardless of trade direction,
// so that two auctions over the same pair can never run concurrently
// within one rebalance nonce.
type auctionPairKey [64]byte

func pairKey(a, b Address) auctionPairKey {
	var lo, hi Address
	if lessAddress(a, b) {
		lo, hi = a, b
	} else {
		lo, hi = b, a
	}
	var k auctionPairKey
	copy(k[:32], lo[:])
	copy(k[32:], hi[:])
	return k
}

func lessAddress(a, b Address) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// auctionEndEntry is one AuctionEnds record (spec.md §3): the end
// timestamp of the most recent auction opened for a pair within a nonce.
type auctionEndEntry struct {
	nonce uint64
	end   uint64
}

// AuctionEndTracker records AuctionEnds per (nonce, pair), per spec.md
// §4.5's collision-prevention note: a new auction over a pair still
// running (or within RestrictedAuctionBuffer of its prior end) within the
// same nonce is rejected rather than allowed to overlap. A new rebalance
// nonce starts with a clean slate for every pair.
type AuctionEndTracker struct {
	ends map[auctionPairKey]auctionEndEntry
}

// NewAuctionEndTracker returns an empty tracker.
func NewAuctionEndTracker() *AuctionEndTracker {
	return &AuctionEndTracker{ends: make(map[auctionPairKey]auctionEndEntry)}
}

// CheckAndReserve rejects the pair if a prior auction over it within the
// same nonce has not yet ended plus RestrictedAuctionBuffer, otherwise
// records end as the new high-water mark for (nonce, pair).
func (t *AuctionEndTracker) CheckAndReserve(nonce uint64, sell, buy Address, now, end uint64) error {
	k := pairKey(sell, buy)
	if prior, ok := t.ends[k]; ok && prior.nonce == nonce && prior.end+RestrictedAuctionBuffer > now {
		return ErrAuctionCollision
	}
	t.ends[k] = auctionEndEntry{nonce: nonce, end: end}
	return nil
}

// AuctionComposition is the minimal view of current holdings buildAuction
// needs to derive surplus/deficit limits: the basket's fully-diluted
// share supply and the raw balances of the two traded mints, all in the
// caller's hands (this package never reads a ledger directly).
type AuctionComposition struct {
	SupplyScaled  Decimal // D9-converted basket share supply ("token amount", spec.md §3)
	SellAmountRaw uint64
	BuyAmountRaw  uint64
}

// NewAuctionComposition builds an AuctionComposition from a caller's
// already-resolved supply and balances; callers resolve these themselves,
// e.g. from Basket.GetTotalSupply and the Inventory slots' AmountRaw.
func NewAuctionComposition(supply Decimal, sellAmountRaw, buyAmountRaw uint64) AuctionComposition {
	return AuctionComposition{
		SupplyScaled:  supply,
		SellAmountRaw: sellAmountRaw,
		BuyAmountRaw:  buyAmountRaw,
	}
}

// deriveLimit computes one side's tradable raw amount, per spec.md §4.5
// step 4: the amount by which the side's current holding departs from
// its rebalance target (`limits.spot` scaled by supply), capped by the
// distance from target to the side's outer band (`low` for the sell
// side's surplus capacity, `high` for the buy side's deficit capacity).
// surplus selects which direction is expected to have departed from
// target: true computes (balance - target) capped by (spot - low) for a
// token expected to be in surplus (the sell side); false computes
// (target - balance) capped by (high - spot) for a token expected to be
// in deficit (the buy side).
func deriveLimit(supply Decimal, balanceRaw uint64, limits RebalanceLimits, surplus bool) (uint64, Decimal, error) {
	balance, err := FromTokenAmount(balanceRaw)
	if err != nil {
		return 0, Decimal{}, err
	}
	target, err := supply.mulDivScale(limits.Spot)
	if err != nil {
		return 0, Decimal{}, err
	}

	var deficit, capDelta, cap Decimal
	if surplus {
		deficit, err = balance.Sub(target)
		if err != nil {
			return 0, Decimal{}, ErrSellTokenNotSurplus
		}
		capDelta, err = limits.Spot.Sub(limits.Low)
	} else {
		deficit, err = target.Sub(balance)
		if err != nil {
			return 0, Decimal{}, ErrBuyTokenNotDeficit
		}
		capDelta, err = limits.High.Sub(limits.Spot)
	}
	if err != nil {
		return 0, Decimal{}, err
	}
	if deficit.IsZero() {
		if surplus {
			return 0, Decimal{}, ErrSellTokenNotSurplus
		}
		return 0, Decimal{}, ErrBuyTokenNotDeficit
	}

	cap, err = supply.mulDivScale(capDelta)
	if err != nil {
		return 0, Decimal{}, err
	}
	limit := Min(deficit, cap)
	raw, err := limit.ToTokenAmount(Floor)
	if err != nil {
		return 0, Decimal{}, err
	}
	return raw, limit, nil
}

// buildAuction computes the start/end price and the sell/buy limits for a
// sell/buy pair from their rebalance price ranges and the basket's
// current composition, per spec.md §4.5.
func buildAuction(id, nonce uint64, basketID, sell, buy Address, now, length uint64, sellDetail, buyDetail TokenDetail, comp AuctionComposition) (*Auction, error) {
	priceStart, err := sellDetail.PriceHigh.divScale(buyDetail.PriceLow)
	if err != nil {
		return nil, err
	}
	priceEnd, err := sellDetail.PriceLow.divScale(buyDetail.PriceHigh)
	if err != nil {
		return nil, err
	}
	if !priceEnd.LessThan(priceStart) {
		return nil, ErrInvalidPrices
	}

	sellLimitRaw, _, err := deriveLimit(comp.SupplyScaled, comp.SellAmountRaw, sellDetail.Limits, true)
	if err != nil {
		return nil, err
	}
	buyLimitRaw, _, err := deriveLimit(comp.SupplyScaled, comp.BuyAmountRaw, buyDetail.Limits, false)
	if err != nil {
		return nil, err
	}

	return &Auction{
		ID:         id,
		Nonce:      nonce,
		BasketID:   basketID,
		Sell:       sell,
		Buy:        buy,
		Start:      now,
		End:        now + length,
		PriceStart: priceStart,
		PriceEnd:   priceEnd,
		SellLimit:  sellLimitRaw,
		BuyLimit:   buyLimitRaw,
	}, nil
}

// OpenAuctionRestricted opens an auction during a rebalance's restricted
// window (up to and including AvailableAt), available only to
// RoleAuctionLauncher. It takes no prices of its own and uses the pair's
// stored detail prices, so a price-deferred pair (zero PriceLow) is not
// opened: the price division fails with ErrMathOverflow.
func OpenAuctionRestricted(r *Rebalance, tracker *AuctionEndTracker, basketID, sell, buy Address, now uint64, auctionLength uint64, callerRoles uint8, comp AuctionComposition) (*Auction, error) {
	if !HasRole(callerRoles, RoleAuctionLauncher) {
		return nil, ErrUnauthorized
	}
	if !r.Ready(now) {
		return nil, ErrAuctionCannotBeOpened
	}
	if now > r.AvailableAt {
		return nil, ErrAuctionCannotBeOpened
	}
	sellDetail, buyDetail, ok := r.GetTokenDetailPair(sell, buy)
	if !ok {
		if _, sellOK := r.GetTokenDetail(sell); !sellOK {
			return nil, ErrInvalidAuctionSellTokenMint
		}
		return nil, ErrInvalidAuctionBuyTokenMint
	}
	auction, err := buildAuction(r.NextAuction(), r.Nonce, basketID, sell, buy, now, auctionLength, sellDetail, buyDetail, comp)
	if err != nil {
		return nil, err
	}
	if err := tracker.CheckAndReserve(r.Nonce, sell, buy, now, auction.End); err != nil {
		return nil, err
	}
	return auction, nil
}

// OpenAuctionPermissionless opens an auction after a rebalance's
// restricted window has elapsed, available to any caller. Per spec.md
// §4.5 / P6, a price-deferred detail pair can never be opened this way —
// only the trusted auction launcher may supply missing prices, so a
// permissionless caller hitting a deferred pair gets
// ErrAuctionCannotBeOpenedPermissionlesslyWithDeferred instead of a
// synthesized price.
func OpenAuctionPermissionless(r *Rebalance, tracker *AuctionEndTracker, basketID, sell, buy Address, now uint64, auctionLength uint64, comp AuctionComposition) (*Auction, error) {
	if !r.Ready(now) {
		return nil, ErrAuctionCannotBeOpened
	}
	if !r.permissionless(now) {
		return nil, ErrAuctionCannotBeOpenedPermissionlesslyYet
	}
	sellDetail, buyDetail, ok := r.GetTokenDetailPair(sell, buy)
	if !ok {
		if _, sellOK := r.GetTokenDetail(sell); !sellOK {
			return nil, ErrInvalidAuctionSellTokenMint
		}
		return nil, ErrInvalidAuctionBuyTokenMint
	}
	if sellDetail.priceDeferred() || buyDetail.priceDeferred() {
		return nil, ErrAuctionCannotBeOpenedPermissionlesslyWithDeferred
	}
	auction, err := buildAuction(r.NextAuction(), r.Nonce, basketID, sell, buy, now, auctionLength, sellDetail, buyDetail, comp)
	if err != nil {
		return nil, err
	}
	if err := tracker.CheckAndReserve(r.Nonce, sell, buy, now, auction.End); err != nil {
		return nil, err
	}
	return auction, nil
}

// CurrentPrice evaluates the Dutch-auction price decay at time now:
//
//	p(t) = p_start * (p_end / p_start)^((t - start) / (end - start))
//
// per spec.md §4.5. now before Start clamps to PriceStart; now after End
// returns ErrAuctionTimeout, matching spec.md §4.5's "for t > end the
// auction is Timeout"; now == End returns PriceEnd.
func (a *Auction) CurrentPrice(now uint64) (Decimal, error) {
	if now > a.End {
		return Decimal{}, ErrAuctionTimeout
	}
	return a.priceAt(now)
}

func (a *Auction) priceAt(now uint64) (Decimal, error) {
	if now <= a.Start {
		return a.PriceStart, nil
	}
	if now >= a.End {
		return a.PriceEnd, nil
	}

	negate := false
	ratio, err := a.PriceEnd.divScale(a.PriceStart)
	if err != nil {
		return Decimal{}, err
	}
	if ratio.LessThan(OneDecimal) {
		ratio, err = a.PriceStart.divScale(a.PriceEnd)
		if err != nil {
			return Decimal{}, err
		}
		negate = true
	}
	lnRatio, defined, err := ratio.Ln()
	if err != nil {
		return Decimal{}, err
	}
	if !defined {
		return Decimal{}, ErrInvalidPrices
	}

	elapsed, err := FromPlainU64(now - a.Start).divScale(FromPlainU64(a.End - a.Start))
	if err != nil {
		return Decimal{}, err
	}
	exponent, err := lnRatio.mulDivScale(elapsed)
	if err != nil {
		return Decimal{}, err
	}
	factor, err := exponent.Exp(negate)
	if err != nil {
		return Decimal{}, err
	}
	return a.PriceStart.mulDivScale(factor)
}
