package core

// basket.go – C2: basket identity, fee parameters, and lifecycle state.
//
// Grounded on programs/infinix/src/utils/accounts/infinix.rs's
// `Infinix` struct and its validate_infinix / set_tvl_fee methods from
// original_source. Field names follow spec.md §3 rather than the
// original's domain-specific naming.

// Basket is the persisted record described in spec.md §3. Amounts are
// non-negative; "scaled" fields are D18 fixed point.
type Basket struct {
	BasketID  Address
	TokenMint Address
	Bump      uint8

	Status BasketStatus

	TVLFee  Decimal // per-second rate
	MintFee Decimal // fraction of minted shares

	DAOPendingFeeShares                     Decimal
	FeeRecipientsPendingFeeShares            Decimal
	FeeRecipientsPendingFeeSharesToBeMinted Decimal

	LastPoke      uint64 // seconds since epoch, truncated to day boundary
	AuctionLength uint64 // seconds

	Mandate string // capacity MaxPaddedStringLength

	// NextDistributionIndex is the next unused FeeDistributionRecord.Index
	// for this basket (strictly monotonic, mirroring Rebalance.Nonce).
	NextDistributionIndex uint64
}

// NextDistribution allocates and returns the next fee-distribution index
// for this basket, per spec.md §3's monotonic per-basket `index`.
func (b *Basket) NextDistribution() uint64 {
	idx := b.NextDistributionIndex
	b.NextDistributionIndex++
	return idx
}

// InitBasket constructs a new basket in the Initializing status, per
// spec.md §4.2. tvlFeeAnnual and mintFee are D18-scaled annual/fractional
// rates; tvlFeeAnnual is converted to the stored per-second rate via
// SetTVLFee so both entry points share one code path.
func InitBasket(basketID, tokenMint Address, bump uint8, tvlFeeAnnual, mintFee Decimal, auctionLength uint64, mandate string) (*Basket, error) {
	if mintFee.GreaterThan(MaxMintFee) {
		return nil, ErrInvalidMintFee
	}
	if auctionLength < MinAuctionLength || auctionLength > MaxAuctionLength {
		return nil, ErrInvalidAuctionLength
	}
	if len(mandate) > MaxPaddedStringLength {
		return nil, ErrInvalidMandateLength
	}

	b := &Basket{
		BasketID:      basketID,
		TokenMint:     tokenMint,
		Bump:          bump,
		Status:        StatusInitializing,
		MintFee:       mintFee,
		AuctionLength: auctionLength,
		Mandate:       mandate,
		DAOPendingFeeShares:                     ZeroDecimal,
		FeeRecipientsPendingFeeShares:            ZeroDecimal,
		FeeRecipientsPendingFeeSharesToBeMinted: ZeroDecimal,
	}
	if err := b.SetTVLFee(tvlFeeAnnual); err != nil {
		return nil, err
	}
	return b, nil
}

// FinaliseInitialisation transitions Initializing -> Initialized. Per
// spec.md §4.2 this happens after the basket's first inventory deposit;
// the caller (add_to_basket) is responsible for having made that deposit
// before calling this.
func (b *Basket) FinaliseInitialisation() error {
	if b.Status != StatusInitializing {
		return ErrInvalidBasketStatus
	}
	b.Status = StatusInitialized
	return nil
}

// Kill transitions Initialized -> Killed. Only an Initialized basket may
// be killed (spec.md §3: a Killed basket only accepts fee-distribution
// and close operations afterwards).
func (b *Basket) Kill() error {
	if b.Status != StatusInitialized {
		return ErrInvalidBasketStatus
	}
	b.Status = StatusKilled
	return nil
}

// BeginMigration transitions Initialized or Killed -> Migrating. Per
// spec.md §3, Migrating accepts only migration ops and inventory
// drainage, so no role change, fee update, mint, or redeem is accepted
// from this point on (P7).
func (b *Basket) BeginMigration() error {
	if b.Status != StatusInitialized && b.Status != StatusKilled {
		return ErrInvalidBasketStatus
	}
	b.Status = StatusMigrating
	return nil
}

// SetTVLFee computes and stores the per-second rate implied by an
// annualised fee, per spec.md §4.3:
//
//	tvl_fee_per_sec = 1 - (1 - annual_fee)^(1/YEAR_IN_SECONDS)
//
// A zero annual fee is stored as exactly zero without going through
// NthRoot. A non-zero annual fee that rounds to a zero per-second rate is
// rejected with ErrTVLFeeTooLow, since that would silently stop fee
// accrual despite the caller asking for a non-zero fee.
func (b *Basket) SetTVLFee(annualFeeScaled Decimal) error {
	if annualFeeScaled.GreaterThan(MaxTVLFee) {
		return ErrTVLFeeTooHigh
	}
	if annualFeeScaled.IsZero() {
		b.TVLFee = ZeroDecimal
		return nil
	}

	oneMinusFee, err := OneDecimal.Sub(annualFeeScaled)
	if err != nil {
		return err
	}
	root, err := oneMinusFee.NthRoot(YearInSeconds)
	if err != nil {
		return err
	}
	perSecond, err := OneDecimal.Sub(root)
	if err != nil {
		return err
	}
	if perSecond.IsZero() {
		return ErrTVLFeeTooLow
	}
	b.TVLFee = perSecond
	return nil
}

// SetMintFee updates the fraction of minted shares taken as a mint fee,
// per spec.md §6's update_basket op. Rejects a fraction above MaxMintFee,
// matching InitBasket's own bound.
func (b *Basket) SetMintFee(mintFee Decimal) error {
	if mintFee.GreaterThan(MaxMintFee) {
		return ErrInvalidMintFee
	}
	b.MintFee = mintFee
	return nil
}

// SetMandate replaces the basket's free-text mandate, per spec.md §6's
// update_basket op. Rejects a mandate longer than MaxPaddedStringLength,
// matching InitBasket's own bound.
func (b *Basket) SetMandate(mandate string) error {
	if len(mandate) > MaxPaddedStringLength {
		return ErrInvalidMandateLength
	}
	b.Mandate = mandate
	return nil
}

// SetAuctionLength updates the default duration of one auction pair, per
// spec.md §6's update_basket op. Rejects a length outside
// [MinAuctionLength, MaxAuctionLength], matching InitBasket's own bound.
func (b *Basket) SetAuctionLength(auctionLength uint64) error {
	if auctionLength < MinAuctionLength || auctionLength > MaxAuctionLength {
		return ErrInvalidAuctionLength
	}
	b.AuctionLength = auctionLength
	return nil
}

// Validate is the composable precondition check used at the start of
// every state-changing op (spec.md §4.2). expectedStatuses is nil to skip
// the status check. requiredRoles is nil to skip the role check;
// otherwise actorRoles (the caller's role bitset for this basket) must
// satisfy at least one of requiredRoles.
func (b *Basket) Validate(expectedStatuses []BasketStatus, requiredRoles []Role, actorRoles uint8) error {
	if requiredRoles != nil {
		ok := false
		for _, r := range requiredRoles {
			if HasRole(actorRoles, r) {
				ok = true
				break
			}
		}
		if !ok {
			return ErrInvalidRole
		}
	}
	if expectedStatuses != nil {
		ok := false
		for _, s := range expectedStatuses {
			if b.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return ErrInvalidBasketStatus
		}
	}
	return nil
}
